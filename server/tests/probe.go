package tests

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/tilewm/tilewm/command"
)

// Probe is a command root that records when its operations start and end, for transport tests.
type Probe struct {
	mu     sync.Mutex
	events []string
	// closing it releases `block` calls
	Release chan struct{}
}

func NewProbe() *Probe {
	return &Probe{Release: make(chan struct{})}
}

func (p *Probe) record(event string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

// Events returns what happened so far, eg. `start x`, `end x`.
func (p *Probe) Events() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

func (p *Probe) Select(string, interface{}) (command.Object, bool) {
	return nil, false
}

func (p *Probe) Commands() command.Commands {
	return probeOps.Bind(p)
}

var probeOps = command.NewTable(
	command.Op[*Probe]{
		Name:   "slow",
		Params: []string{"tag"},
		Fn: func(p *Probe, args command.Args) (interface{}, error) {
			tag, err := args.String(0)
			if err != nil {
				return nil, err
			}
			p.record("start " + tag)
			time.Sleep(50 * time.Millisecond)
			p.record("end " + tag)
			return tag, nil
		},
	},
	command.Op[*Probe]{
		Name: "block",
		Fn: func(p *Probe, _ command.Args) (interface{}, error) {
			<-p.Release
			return nil, nil
		},
	},
	command.Op[*Probe]{
		Name: "fail",
		Fn: func(p *Probe, _ command.Args) (interface{}, error) {
			return nil, errors.New("probe failure")
		},
	},
	command.Op[*Probe]{
		Name: "boom",
		Fn: func(p *Probe, _ command.Args) (interface{}, error) {
			panic("boom")
		},
	},
	command.Op[*Probe]{
		Name: "unencodable",
		Fn: func(p *Probe, _ command.Args) (interface{}, error) {
			return make(chan int), nil
		},
	},
)
