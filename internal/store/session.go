package store

const (
	sessionEmployeeIDKey   = "session_employee_id"
	sessionEmployeeNameKey = "session_employee_name"
)

// Session is the logged-in employee, persisted across runs until an
// explicit logout.
type Session struct {
	EmployeeID   string
	EmployeeName string
}

// GetSession returns the stored session, or nil when nobody is logged
// in.
func (db *DB) GetSession() (*Session, error) {
	id, err := db.GetState(sessionEmployeeIDKey)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, nil
	}
	name, err := db.GetState(sessionEmployeeNameKey)
	if err != nil {
		return nil, err
	}
	return &Session{EmployeeID: id, EmployeeName: name}, nil
}

func (db *DB) SaveSession(s Session) error {
	if err := db.SetState(sessionEmployeeIDKey, s.EmployeeID); err != nil {
		return err
	}
	return db.SetState(sessionEmployeeNameKey, s.EmployeeName)
}

func (db *DB) ClearSession() error {
	if err := db.DeleteState(sessionEmployeeIDKey); err != nil {
		return err
	}
	return db.DeleteState(sessionEmployeeNameKey)
}
