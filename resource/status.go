package resource

// Status tracks where an entity sits in its remote lifecycle.
type Status string

const (
	StatusUnknown  Status = ""
	StatusLoading  Status = "Loading"
	StatusCreating Status = "Creating"
	StatusUpdating Status = "Updating"
	StatusDeleting Status = "Deleting"
	StatusActive   Status = "Active"
	StatusNotFound Status = "NotFound"
	StatusError    Status = "Error"
	StatusDeleted  Status = "Deleted"
)

// transitions holds the allowed moves. NotFound and Error stay in the table
// so a later load or retry can leave them; a full reload may re-activate
// Active and NotFound entries in place; Deleted is terminal.
var transitions = map[Status][]Status{
	StatusUnknown:  {StatusLoading, StatusCreating, StatusDeleting},
	StatusLoading:  {StatusActive, StatusNotFound, StatusError},
	StatusCreating: {StatusActive, StatusError},
	StatusUpdating: {StatusActive, StatusError},
	StatusDeleting: {StatusDeleted, StatusError},
	StatusActive:   {StatusActive, StatusLoading, StatusUpdating, StatusDeleting},
	StatusNotFound: {StatusActive, StatusLoading, StatusCreating},
	StatusError:    {StatusLoading, StatusCreating, StatusUpdating, StatusDeleting},
}

func (s Status) CanTransition(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s Status) Terminal() bool {
	return s == StatusDeleted
}

func (s Status) String() string {
	if s == StatusUnknown {
		return "Unknown"
	}
	return string(s)
}
