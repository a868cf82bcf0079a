package vm

import (
	"math/rand/v2"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Urethramancer/mov86/assembler"
	"github.com/Urethramancer/mov86/cpu"
)

// VM is a simulator session. It is safe for concurrent use: every call runs
// to completion before the next one starts.
type VM struct {
	mu      sync.Mutex
	cpu     *cpu.CPU
	asm     *assembler.Assembler
	rng     *rand.Rand
	log     logrus.FieldLogger
	cpuOpts []cpu.Option
}

// Option configures a VM.
type Option func(*VM) error

// WithLogger sets the logger. The default is the logrus standard logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(v *VM) error {
		v.log = l
		return nil
	}
}

// WithRandom sets the generator used by Randomize. The default draws from
// the math/rand/v2 global source.
func WithRandom(rng *rand.Rand) Option {
	return func(v *VM) error {
		v.rng = rng
		return nil
	}
}

// WithCPUOptions passes options through to cpu.New.
func WithCPUOptions(opts ...cpu.Option) Option {
	return func(v *VM) error {
		v.cpuOpts = append(v.cpuOpts, opts...)
		return nil
	}
}

// New creates a session over a freshly constructed CPU.
func New(opts ...Option) (*VM, error) {
	v := &VM{
		asm: assembler.New(),
		log: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, err
		}
	}

	c, err := cpu.New(v.cpuOpts...)
	if err != nil {
		return nil, err
	}
	v.cpu = c
	return v, nil
}

// apply runs one engine command under the lock and logs the outcome.
func (v *VM) apply(command string, fn func(*cpu.CPU) ([]cpu.Entry, error)) ([]cpu.Entry, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.applyLocked(command, fn)
}

func (v *VM) applyLocked(command string, fn func(*cpu.CPU) ([]cpu.Entry, error)) ([]cpu.Entry, error) {
	entries, err := fn(v.cpu)
	if err != nil {
		v.log.WithFields(logrus.Fields{
			"command": command,
			"kind":    cpu.Kind(err),
		}).Info(err)
		return nil, err
	}
	for _, e := range entries {
		v.log.WithFields(logrus.Fields{
			"op":       e.Op,
			"kind":     e.Kind,
			"register": e.Register,
			"second":   e.SecondRegister,
			"pointer":  e.Pointer,
			"value":    e.Value,
		}).Debug(command)
	}
	return entries, nil
}

// one adapts a single-entry engine command to apply.
func one(e cpu.Entry, err error) ([]cpu.Entry, error) {
	if err != nil {
		return nil, err
	}
	return []cpu.Entry{e}, nil
}
