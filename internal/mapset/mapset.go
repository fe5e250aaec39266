package mapset

// MapDocument is one rendered map
type MapDocument struct {
	Name       string `json:"name"`
	Group      string `json:"group"`
	Content    string `json:"-"`
	PointCount int    `json:"point_count"`
	Center     LatLon `json:"center"`
	Bounds     Bounds `json:"bounds"`
}

// MapSet is an ordered, name-unique collection of map documents.
// Iteration order is the order groups were processed in.
type MapSet struct {
	docs  []MapDocument
	index map[string]int
}

// NewMapSet returns an empty set
func NewMapSet() *MapSet {
	return &MapSet{index: make(map[string]int)}
}

// Add appends a document; a document with an existing name replaces it in place
func (s *MapSet) Add(doc MapDocument) {
	if i, ok := s.index[doc.Name]; ok {
		s.docs[i] = doc
		return
	}
	s.index[doc.Name] = len(s.docs)
	s.docs = append(s.docs, doc)
}

// Len returns the number of documents
func (s *MapSet) Len() int {
	return len(s.docs)
}

// Names returns document names in insertion order
func (s *MapSet) Names() []string {
	names := make([]string, len(s.docs))
	for i, d := range s.docs {
		names[i] = d.Name
	}
	return names
}

// Get returns the document with the given name
func (s *MapSet) Get(name string) (MapDocument, bool) {
	i, ok := s.index[name]
	if !ok {
		return MapDocument{}, false
	}
	return s.docs[i], true
}

// Documents returns a copy of the documents in insertion order
func (s *MapSet) Documents() []MapDocument {
	return append([]MapDocument(nil), s.docs...)
}

// Contents returns the name to content mapping
func (s *MapSet) Contents() map[string]string {
	out := make(map[string]string, len(s.docs))
	for _, d := range s.docs {
		out[d.Name] = d.Content
	}
	return out
}
