package domain

// CaseItem is one possible reward inside a case.
type CaseItem struct {
	Type  string `json:"type"`
	Value int64  `json:"value"`
}

// Case is a purchasable container yielding one randomly drawn item.
// A valid case has a non-empty item list and non-negative item values.
type Case struct {
	ID    string     `json:"id"`
	Price int64      `json:"price"`
	Items []CaseItem `json:"items"`
}

// RewardType enumerates the kinds of rewards the daily track and the level
// table can grant.
type RewardType string

const (
	RewardPoints RewardType = "points"
	RewardItem   RewardType = "item"
)

// Reward is one granted reward entry.
type Reward struct {
	Type  RewardType `json:"type"`
	Value int64      `json:"value"`
	// Item holds the item type for RewardItem rewards.
	Item string `json:"item,omitempty"`
}
