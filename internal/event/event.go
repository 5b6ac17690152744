package event

// Event is one discovered content item (post, thread, search hit), normalized
// across all source kinds. ID and Source are always set, possibly synthesized;
// every other field defaults to an empty string rather than being absent.
type Event struct {
	ID        string            `json:"id"`
	Source    string            `json:"source"`
	URL       string            `json:"url"`
	Title     string            `json:"title"`
	Content   string            `json:"content"`
	CreatedAt string            `json:"created_at"`
	Lang      string            `json:"lang"`
	Metadata  map[string]string `json:"metadata"`
}

// Brief is the subset of an Event persisted in the cycle artifact.
type Brief struct {
	ID       string            `json:"id"`
	Source   string            `json:"source"`
	Title    string            `json:"title"`
	URL      string            `json:"url"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata"`
}

// Brief returns the persisted subset of the event.
func (e Event) Brief() Brief {
	return Brief{
		ID:       e.ID,
		Source:   e.Source,
		Title:    e.Title,
		URL:      e.URL,
		Content:  e.Content,
		Metadata: e.Metadata,
	}
}

// Draft is the rendered reply for one matched (event, rule) pair.
type Draft struct {
	EventID   string `json:"event_id"`
	RuleID    string `json:"rule_id"`
	Lang      string `json:"lang"`
	DraftText string `json:"draft_text"`
}

// CycleOutput is the artifact written after each monitoring cycle. It fully
// replaces the previous artifact, so only the latest cycle is retrievable.
type CycleOutput struct {
	Language      string  `json:"language"`
	Cycle         int     `json:"cycle"`
	TotalEvents   int     `json:"total_events"`
	MatchedEvents int     `json:"matched_events"`
	Events        []Brief `json:"events"`
	Drafts        []Draft `json:"drafts"`
}
