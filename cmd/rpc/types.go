package rpc

import (
	"github.com/canopy-network/canopy-amm/fsm"
	"github.com/shopspring/decimal"
)

type assetRequest struct {
	Asset string `json:"asset"`
}

type accountRequest struct {
	Account string `json:"account"`
}

type assetAndAccountRequest struct {
	assetRequest
	accountRequest
}

type allowanceRequest struct {
	assetRequest
	Owner   string `json:"owner"`
	Spender string `json:"spender"`
}

type eventsRequest struct {
	Limit int `json:"limit"`
}

// StakeResponse is a stake position along with the fee discount it earns
type StakeResponse struct {
	*fsm.StakePosition
	Discount decimal.Decimal `json:"discount"`
}

type ProcessResourceUsage struct {
	Name          string  `json:"name"`
	Status        string  `json:"status"`
	CreateTime    string  `json:"createTime"`
	FDCount       uint64  `json:"fdCount"`
	ThreadCount   uint64  `json:"threadCount"`
	MemoryPercent float64 `json:"usedMemoryPercent"`
	CPUPercent    float64 `json:"usedCPUPercent"`
}

type SystemResourceUsage struct {
	// ram
	TotalRAM       uint64  `json:"totalRAM"`
	AvailableRAM   uint64  `json:"availableRAM"`
	UsedRAM        uint64  `json:"usedRAM"`
	UsedRAMPercent float64 `json:"usedRAMPercent"`
	FreeRAM        uint64  `json:"freeRAM"`
	// CPU
	UsedCPUPercent float64 `json:"usedCPUPercent"`
	UserCPU        float64 `json:"userCPU"`
	SystemCPU      float64 `json:"systemCPU"`
	IdleCPU        float64 `json:"idleCPU"`
	// disk
	TotalDisk       uint64  `json:"totalDisk"`
	UsedDisk        uint64  `json:"usedDisk"`
	UsedDiskPercent float64 `json:"usedDiskPercent"`
	FreeDisk        uint64  `json:"freeDisk"`
	// io
	ReceivedBytesIO uint64 `json:"receivedBytesIO"`
	WrittenBytesIO  uint64 `json:"writtenBytesIO"`
}

type resourceUsageResponse struct {
	Process ProcessResourceUsage `json:"process"`
	System  SystemResourceUsage  `json:"system"`
}
