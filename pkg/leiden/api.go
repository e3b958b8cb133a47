package leiden

// Assignment pairs a node identifier with its detected community.
type Assignment struct {
	NodeID      string `json:"nodeId"`
	CommunityID int    `json:"communityId"`
}

// DetectCommunities builds the canonical graph from a raw edge list, runs
// the Leiden algorithm, and flattens the partition into one entry per node.
// Order of the returned slice is unspecified. An empty edge list yields an
// empty slice. A nil config selects the defaults (resolution 1.0,
// time-based seed).
func DetectCommunities(edges []Edge, cfg *Config) ([]Assignment, error) {
	graph := BuildGraph(edges)

	result, err := Run(graph, cfg)
	if err != nil {
		return nil, err
	}

	assignments := make([]Assignment, 0, len(result.FinalCommunities))
	for nodeID, communityID := range result.FinalCommunities {
		assignments = append(assignments, Assignment{
			NodeID:      nodeID,
			CommunityID: communityID,
		})
	}
	return assignments, nil
}
