package domain

// FiqhOpinion is one scholarly position within a fiqh issue.
type FiqhOpinion struct {
	Position string   `json:"position"`
	Scholars []string `json:"scholars"`
}

// FiqhIssue is one structured jurisprudence issue extracted from a
// scanned fiqh card. Missing fields are empty, never omitted.
type FiqhIssue struct {
	IssueNumber        int               `json:"issue_number"`
	Question           string            `json:"question"`
	Context            string            `json:"context"`
	Opinions           []FiqhOpinion     `json:"opinions"`
	DisagreementReason string            `json:"disagreement_reason"`
	Evidence           map[string]string `json:"evidence"`
	PreferredOpinion   string            `json:"preferred_opinion"`
	PracticalImpact    string            `json:"practical_impact"`
	References         string            `json:"references"`
}
