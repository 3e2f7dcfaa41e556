package roster

type ManagerListResponse struct {
	Managers []string `json:"managers"`
}

type AgentListResponse struct {
	Manager string   `json:"manager"`
	Agents  []string `json:"agents"`
}
