package roster

// Service is the read-only manager→agent index built from the assignment dataset.
type Service interface {
	// Managers returns distinct manager names in order of first appearance.
	Managers() []string

	// Agents returns the agents owned by manager, deduplicated, in source order.
	Agents(manager string) ([]string, error)

	// ManagerOf returns the owning manager of agent.
	ManagerOf(agent string) (string, bool)

	// AllAgents returns every assigned agent once, in source order.
	AllAgents() []string
}
