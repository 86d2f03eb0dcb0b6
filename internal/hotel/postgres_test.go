package hotel

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockStore(t *testing.T) (*PGStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPGStore(db), mock
}

func TestCreateRoomDefaultsStatus(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("insert into rooms").
		WithArgs(sqlmock.AnyArg(), "204", "Double", int64(12500), RoomAvailable, "").
		WillReturnResult(sqlmock.NewResult(1, 1))

	room := &Room{Number: "204", Type: "Double", RateCents: 12500}
	if err := store.CreateRoom(context.Background(), room); err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	if room.ID == "" {
		t.Fatal("expected generated id")
	}
	if room.Status != RoomAvailable {
		t.Fatalf("unexpected status: %s", room.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateRoomPartial(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`update rooms set status=\$1, updated_at=now\(\)`).
		WithArgs(RoomMaintenance, "room-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	now := time.Now()
	mock.ExpectQuery("select .* from rooms where id=").
		WithArgs("room-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "number", "type", "rate_cents", "status", "description", "created_at", "updated_at",
		}).AddRow("room-1", "204", "Double", 12500, RoomMaintenance, "", now, now))

	status := RoomMaintenance
	room, err := store.UpdateRoom(context.Background(), "room-1", RoomUpdate{Status: &status})
	if err != nil {
		t.Fatalf("UpdateRoom: %v", err)
	}
	if room.Status != RoomMaintenance {
		t.Fatalf("unexpected status: %s", room.Status)
	}
}

func TestUpdateRoomNoFields(t *testing.T) {
	store, _ := newMockStore(t)

	if _, err := store.UpdateRoom(context.Background(), "room-1", RoomUpdate{}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDeleteStaffNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("delete from staff where id=").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := store.DeleteStaff(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBookingsForGuestJoinsRoomNumber(t *testing.T) {
	store, mock := newMockStore(t)

	checkIn := time.Now()
	checkOut := checkIn.Add(48 * time.Hour)
	mock.ExpectQuery("select b.id, coalesce").
		WithArgs("guest-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "number", "check_in", "check_out"}).
			AddRow("bk-1", "204", checkIn, checkOut))

	sums, err := store.BookingsForGuest(context.Background(), "guest-1")
	if err != nil {
		t.Fatalf("BookingsForGuest: %v", err)
	}
	if len(sums) != 1 || sums[0].RoomNumber != "204" {
		t.Fatalf("unexpected summaries: %+v", sums)
	}
}

func TestGetSettingsCreatesDefaults(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("select policy, notify_email, notify_sms").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("insert into settings").
		WithArgs("", true, true).
		WillReturnResult(sqlmock.NewResult(1, 1))

	st, err := store.GetSettings(context.Background())
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if !st.NotifyEmail || !st.NotifySMS || st.Policy != "" {
		t.Fatalf("unexpected defaults: %+v", st)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
