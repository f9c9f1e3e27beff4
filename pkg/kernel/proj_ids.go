package kernel

type CandidateID string

func NewCandidateID(id string) CandidateID { return CandidateID(id) }
func (r CandidateID) String() string       { return string(r) }
func (r CandidateID) IsEmpty() bool        { return string(r) == "" }

// JobID identifies a job posting
type JobID string

func NewJobID(id string) JobID { return JobID(id) }
func (r JobID) String() string { return string(r) }
func (r JobID) IsEmpty() bool  { return string(r) == "" }

type NoteID string

func NewNoteID(id string) NoteID { return NoteID(id) }
func (r NoteID) String() string  { return string(r) }
func (r NoteID) IsEmpty() bool   { return string(r) == "" }

type TagID string

func NewTagID(id string) TagID { return TagID(id) }
func (r TagID) String() string { return string(r) }
func (r TagID) IsEmpty() bool  { return string(r) == "" }

type MatchID string

func NewMatchID(id string) MatchID { return MatchID(id) }
func (r MatchID) String() string   { return string(r) }
func (r MatchID) IsEmpty() bool    { return string(r) == "" }

// EnrichmentJobID identifies a queued candidate enrichment
type EnrichmentJobID string

func NewEnrichmentJobID(id string) EnrichmentJobID { return EnrichmentJobID(id) }
func (r EnrichmentJobID) String() string           { return string(r) }
func (r EnrichmentJobID) IsEmpty() bool            { return string(r) == "" }
