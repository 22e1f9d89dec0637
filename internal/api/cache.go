package api

import (
	"sync"
	"time"
)

// FuncionarioCache keeps the employee directory for a TTL so the kiosk
// picker does not refetch on every return to the home screen.
type FuncionarioCache struct {
	mu           sync.RWMutex
	funcionarios []Funcionario
	fetchedAt    time.Time
	ttl          time.Duration
}

func NewFuncionarioCache(ttl time.Duration) *FuncionarioCache {
	return &FuncionarioCache{ttl: ttl}
}

func (c *FuncionarioCache) Get() []Funcionario {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.funcionarios == nil || time.Since(c.fetchedAt) > c.ttl {
		return nil
	}

	result := make([]Funcionario, len(c.funcionarios))
	copy(result, c.funcionarios)
	return result
}

func (c *FuncionarioCache) Set(funcionarios []Funcionario) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.funcionarios = make([]Funcionario, len(funcionarios))
	copy(c.funcionarios, funcionarios)
	c.fetchedAt = time.Now()
}

func (c *FuncionarioCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.funcionarios = nil
}
