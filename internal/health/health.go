// Package health reporta el estado del servicio: conexión a Mongo, si el
// modelo de similitud ya está construido y métricas de proceso y de host.
package health

import (
	"context"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// SystemStats son las métricas de proceso y de host.
type SystemStats struct {
	NumGoroutine int    `json:"num_goroutine"`
	Alloc        uint64 `json:"alloc_bytes"`
	Sys          uint64 `json:"sys_bytes"`
	NumGC        uint32 `json:"num_gc"`

	TotalRAM        uint64    `json:"total_ram"`
	AvailableRAM    uint64    `json:"available_ram"`
	UsedRAMPercent  float64   `json:"used_ram_percent"`
	TotalCPUCores   int       `json:"total_cpu_cores"`
	CPUUsagePercent []float64 `json:"cpu_usage_percent"`
}

// Status es la respuesta del healthcheck.
type Status struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Services  map[string]interface{} `json:"services"`
	System    SystemStats            `json:"system"`
}

// ModelReadiness informa si el modelo ya puede atender consultas.
type ModelReadiness interface {
	Ready() bool
}

// Service arma el estado agregado.
type Service interface {
	Check(ctx context.Context) Status
}

type healthService struct {
	mongoClient *mongo.Client
	readiness   ModelReadiness
}

// NewService crea el servicio de health. mongoClient puede ser nil en
// corridas sin Mongo (el chequeo se reporta como deshabilitado).
func NewService(mongoClient *mongo.Client, readiness ModelReadiness) Service {
	return &healthService{mongoClient: mongoClient, readiness: readiness}
}

func (s *healthService) Check(ctx context.Context) Status {
	services := make(map[string]interface{})
	overall := "ok"

	mongoStatus := "disabled"
	if s.mongoClient != nil {
		mongoStatus = "ok"
		if err := s.mongoClient.Ping(ctx, nil); err != nil {
			mongoStatus = "down"
			overall = "degraded"
		}
	}
	services["mongodb"] = map[string]string{"status": mongoStatus}

	modelStatus := "building"
	if s.readiness != nil && s.readiness.Ready() {
		modelStatus = "ready"
	} else {
		overall = "degraded"
	}
	services["model"] = map[string]string{"status": modelStatus}

	return Status{
		Status:    overall,
		Timestamp: time.Now().UTC(),
		Services:  services,
		System:    systemStats(),
	}
}

func systemStats() SystemStats {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	stats := SystemStats{
		NumGoroutine:  runtime.NumGoroutine(),
		Alloc:         ms.Alloc,
		Sys:           ms.Sys,
		NumGC:         ms.NumGC,
		TotalCPUCores: runtime.NumCPU(),
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		stats.TotalRAM = vm.Total
		stats.AvailableRAM = vm.Available
		stats.UsedRAMPercent = vm.UsedPercent
	}
	if usage, err := cpu.Percent(0, false); err == nil {
		stats.CPUUsagePercent = usage
	}
	return stats
}
