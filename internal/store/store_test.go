package store

import (
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenAt(t.TempDir())
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestStateRoundTrip(t *testing.T) {
	db := openTestDB(t)

	if v, err := db.GetState("missing"); err != nil || v != "" {
		t.Errorf("GetState(missing) = %q, %v; want empty, nil", v, err)
	}

	if err := db.SetState("k", "v1"); err != nil {
		t.Fatalf("SetState failed: %v", err)
	}
	if err := db.SetState("k", "v2"); err != nil {
		t.Fatalf("SetState overwrite failed: %v", err)
	}
	if v, _ := db.GetState("k"); v != "v2" {
		t.Errorf("GetState = %q, want v2", v)
	}

	if err := db.DeleteState("k"); err != nil {
		t.Fatalf("DeleteState failed: %v", err)
	}
	if v, _ := db.GetState("k"); v != "" {
		t.Errorf("GetState after delete = %q, want empty", v)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	db := openTestDB(t)

	session, err := db.GetSession()
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if session != nil {
		t.Fatalf("expected no session, got %+v", session)
	}

	if err := db.SaveSession(Session{EmployeeID: "emp-1", EmployeeName: "Maria Silva"}); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	session, err = db.GetSession()
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if session == nil || session.EmployeeID != "emp-1" || session.EmployeeName != "Maria Silva" {
		t.Errorf("session = %+v", session)
	}

	if err := db.ClearSession(); err != nil {
		t.Fatalf("ClearSession failed: %v", err)
	}
	if session, _ := db.GetSession(); session != nil {
		t.Errorf("session survived logout: %+v", session)
	}
}

func TestPunchLog(t *testing.T) {
	db := openTestDB(t)

	if punch, err := db.LastPunch("emp-1"); err != nil || punch != nil {
		t.Fatalf("LastPunch on empty log = %+v, %v", punch, err)
	}

	lat, lon := -23.55, -46.63
	base := time.Now().Add(-2 * time.Hour)

	first := Punch{
		EmployeeID:   "emp-1",
		EmployeeName: "Maria Silva",
		Status:       "TURNO_INICIADO",
		PunchedAt:    base,
		Latitude:     &lat,
		Longitude:    &lon,
	}
	if _, err := db.InsertPunch(&first); err != nil {
		t.Fatalf("InsertPunch failed: %v", err)
	}

	second := Punch{
		EmployeeID:   "emp-1",
		EmployeeName: "Maria Silva",
		Status:       "PAUSA_INICIADA",
		PunchedAt:    base.Add(time.Hour),
	}
	if _, err := db.InsertPunch(&second); err != nil {
		t.Fatalf("InsertPunch failed: %v", err)
	}

	// Another employee's punch must not show up.
	other := Punch{EmployeeID: "emp-2", EmployeeName: "João", Status: "TURNO_INICIADO", PunchedAt: base.Add(90 * time.Minute)}
	if _, err := db.InsertPunch(&other); err != nil {
		t.Fatalf("InsertPunch failed: %v", err)
	}

	last, err := db.LastPunch("emp-1")
	if err != nil {
		t.Fatalf("LastPunch failed: %v", err)
	}
	if last == nil || last.Status != "PAUSA_INICIADA" {
		t.Fatalf("LastPunch = %+v, want the break punch", last)
	}
	if last.Latitude != nil {
		t.Error("second punch should carry no coordinates")
	}

	firstBack, err := db.LastPunch("emp-2")
	if err != nil {
		t.Fatalf("LastPunch failed: %v", err)
	}
	if firstBack == nil || firstBack.EmployeeName != "João" {
		t.Errorf("LastPunch(emp-2) = %+v", firstBack)
	}

	today, err := db.TodayPunches("emp-1")
	if err != nil {
		t.Fatalf("TodayPunches failed: %v", err)
	}
	if len(today) != 2 {
		t.Fatalf("TodayPunches returned %d punches, want 2", len(today))
	}
	// Chronological order for the day view.
	if today[0].Status != "TURNO_INICIADO" || today[1].Status != "PAUSA_INICIADA" {
		t.Errorf("punches out of order: %s, %s", today[0].Status, today[1].Status)
	}
	if today[0].Latitude == nil || *today[0].Latitude != lat {
		t.Error("stored coordinates lost")
	}
}
