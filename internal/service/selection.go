package service

// Display channels and posting connectors are deliberately separate
// selections. Channels only annotate the saved content record for UI
// grouping; connectors decide where the post is actually sent. Toggling
// one never touches the other.

const (
	ConnectorTwitter  = "twitter"
	ConnectorLinkedIn = "linkedin"
)

// DisplayChannelSelection is an ordered toggle-set of display channel ids.
type DisplayChannelSelection struct {
	ids []string
}

// NewDisplayChannelSelection starts with one preselected channel.
func NewDisplayChannelSelection(defaultID string) *DisplayChannelSelection {
	s := &DisplayChannelSelection{}
	if defaultID != "" {
		s.ids = append(s.ids, defaultID)
	}
	return s
}

func (s *DisplayChannelSelection) Toggle(id string) {
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return
		}
	}
	s.ids = append(s.ids, id)
}

func (s *DisplayChannelSelection) Contains(id string) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

func (s *DisplayChannelSelection) Selected() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

func (s *DisplayChannelSelection) Replace(ids []string) {
	s.ids = append(s.ids[:0:0], ids...)
}

// PostingConnectorSelection is an ordered toggle-set of connector ids.
type PostingConnectorSelection struct {
	ids []string
}

// NewPostingConnectorSelection defaults to twitter, which posts through
// server-held credentials and needs no per-user connection.
func NewPostingConnectorSelection() *PostingConnectorSelection {
	return &PostingConnectorSelection{ids: []string{ConnectorTwitter}}
}

func (s *PostingConnectorSelection) Toggle(id string) {
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return
		}
	}
	s.ids = append(s.ids, id)
}

func (s *PostingConnectorSelection) Contains(id string) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

func (s *PostingConnectorSelection) Selected() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

func (s *PostingConnectorSelection) Replace(ids []string) {
	s.ids = append(s.ids[:0:0], ids...)
}
