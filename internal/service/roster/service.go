package roster

import (
	"fmt"

	"github.com/cmlabs-hris/agent-hours-go/internal/domain/dataset"
	"github.com/cmlabs-hris/agent-hours-go/internal/domain/roster"
)

type rosterServiceImpl struct {
	managers []string
	agents   map[string][]string
	owner    map[string]string
	all      []string
}

// NewRosterService indexes the assignment records. When an agent is listed more than once
// the last row wins: the agent belongs only to the manager of its final assignment.
func NewRosterService(assignments []dataset.Assignment) roster.Service {
	owner := make(map[string]string, len(assignments))
	for _, a := range assignments {
		owner[a.Agent] = a.Manager
	}

	s := &rosterServiceImpl{
		agents: make(map[string][]string),
		owner:  owner,
	}

	seenManager := make(map[string]bool)
	seenAgent := make(map[string]bool)
	for _, a := range assignments {
		if !seenManager[a.Manager] {
			seenManager[a.Manager] = true
			s.managers = append(s.managers, a.Manager)
			s.agents[a.Manager] = []string{}
		}
		if owner[a.Agent] != a.Manager || seenAgent[a.Agent] {
			continue
		}
		seenAgent[a.Agent] = true
		s.agents[a.Manager] = append(s.agents[a.Manager], a.Agent)
		s.all = append(s.all, a.Agent)
	}

	return s
}

func (s *rosterServiceImpl) Managers() []string {
	out := make([]string, len(s.managers))
	copy(out, s.managers)
	return out
}

func (s *rosterServiceImpl) Agents(manager string) ([]string, error) {
	agents, ok := s.agents[manager]
	if !ok {
		return nil, fmt.Errorf("agents of %q: %w", manager, roster.ErrManagerNotFound)
	}
	out := make([]string, len(agents))
	copy(out, agents)
	return out, nil
}

func (s *rosterServiceImpl) ManagerOf(agent string) (string, bool) {
	m, ok := s.owner[agent]
	return m, ok
}

func (s *rosterServiceImpl) AllAgents() []string {
	out := make([]string, len(s.all))
	copy(out, s.all)
	return out
}
