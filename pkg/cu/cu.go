package cu

import (
	"errors"

	"github.com/vermeil-labs/vermeil/pkg/safemath"
)

var ErrComputeExceeded = errors.New("compute budget exceeded")

// ComputeMeter tracks the compute units an instruction has left to spend.
type ComputeMeter struct {
	remaining       uint64
	startingBalance uint64
	exceeded        bool
}

func NewComputeMeter(budget uint64) ComputeMeter {
	return ComputeMeter{remaining: budget, startingBalance: budget}
}

func NewComputeMeterDefault() ComputeMeter {
	return NewComputeMeter(200000)
}

func (cm *ComputeMeter) Consume(cost uint64) error {
	cm.exceeded = cm.remaining < cost
	cm.remaining = safemath.SaturatingSubU64(cm.remaining, cost)

	if cm.exceeded {
		return ErrComputeExceeded
	}
	return nil
}

func (cm *ComputeMeter) Used() uint64 {
	return cm.startingBalance - cm.remaining
}

func (cm *ComputeMeter) Remaining() uint64 {
	return cm.remaining
}

func (cm *ComputeMeter) Exceeded() bool {
	return cm.exceeded
}
