package service

import (
	"context"
	"errors"
	"testing"

	"radiorecon/internal/models"
	"radiorecon/internal/repository"
)

type fakeEntryRepo struct {
	memSink
	gotFilter repository.EntryFilter
	listErr   error
}

func (f *fakeEntryRepo) List(_ context.Context, filter repository.EntryFilter) ([]models.LogEntry, error) {
	f.gotFilter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.entries, nil
}

func TestEventLogService_AppendStampsTicksAndFansOut(t *testing.T) {
	clk := &stepClock{now: 1234}
	files, db := &memSink{}, &fakeEntryRepo{}
	svc := NewEventLogService(clk, db, nil, files, db)

	if err := svc.Append(context.Background(), models.StreamGeneral, models.CategoryWifiScan, "WIFI_SCAN|SSID:a|MAC:b|RSSI:-1"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	for name, sink := range map[string]*memSink{"files": files, "db": &db.memSink} {
		if len(sink.entries) != 1 {
			t.Fatalf("%s: expected 1 entry, got %d", name, len(sink.entries))
		}
		e := sink.entries[0]
		if e.Ticks != 1234 || e.Stream != models.StreamGeneral || e.Category != models.CategoryWifiScan {
			t.Fatalf("%s: unexpected entry %+v", name, e)
		}
	}
}

func TestEventLogService_AppendReportsFailureButWritesOtherSinks(t *testing.T) {
	broken := &memSink{err: errors.New("disk full")}
	ok := &memSink{}
	svc := NewEventLogService(&stepClock{}, nil, nil, broken, ok)

	err := svc.Append(context.Background(), models.StreamCredential, models.CategoryWifiCracked, "x")
	if !errors.Is(err, models.ErrLogWrite) {
		t.Fatalf("expected ErrLogWrite, got %v", err)
	}
	if len(ok.entries) != 1 {
		t.Fatalf("healthy sink should still receive the entry")
	}
}

func TestEventLogService_AppendRejectsUnknownStream(t *testing.T) {
	sink := &memSink{}
	svc := NewEventLogService(&stepClock{}, nil, nil, sink)

	err := svc.Append(context.Background(), models.Stream("debug"), models.CategoryBLE, "x")
	if !errors.Is(err, models.ErrLogWrite) {
		t.Fatalf("expected ErrLogWrite, got %v", err)
	}
	if len(sink.entries) != 0 {
		t.Fatalf("nothing should be written")
	}
}

func TestEventLogService_ListNormalizesFilter(t *testing.T) {
	db := &fakeEntryRepo{}
	svc := NewEventLogService(&stepClock{}, db, nil)

	if _, err := svc.List(context.Background(), LogFilter{Stream: " General ", Category: "wifi_scan"}); err != nil {
		t.Fatalf("List: %v", err)
	}
	want := repository.EntryFilter{Stream: models.StreamGeneral, Category: models.CategoryWifiScan, Limit: defaultListLimit}
	if db.gotFilter != want {
		t.Fatalf("filter = %+v, want %+v", db.gotFilter, want)
	}

	if _, err := svc.List(context.Background(), LogFilter{Limit: 5000}); err != nil {
		t.Fatalf("List: %v", err)
	}
	if db.gotFilter.Limit != maxListLimit {
		t.Fatalf("limit should be capped, got %d", db.gotFilter.Limit)
	}
}

func TestEventLogService_ListRejectsUnknownValues(t *testing.T) {
	svc := NewEventLogService(&stepClock{}, &fakeEntryRepo{}, nil)

	for _, f := range []LogFilter{{Stream: "audit"}, {Category: "TEMPERATURE"}} {
		_, err := svc.List(context.Background(), f)
		if !IsInvalidFilter(err) {
			t.Fatalf("filter %+v: expected invalid filter error, got %v", f, err)
		}
	}
}

func TestEventLogService_ListWithoutQueryStore(t *testing.T) {
	svc := NewEventLogService(&stepClock{}, nil, nil, &memSink{})
	got, err := svc.List(context.Background(), LogFilter{})
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v (%v)", got, err)
	}
}

func TestPayloadFormats(t *testing.T) {
	cases := []struct{ got, want string }{
		{payloadWlanInitSuccess, "WLAN|INIT|SUCCESS"},
		{payloadWlanInitError("radio not active"), "WLAN|INIT|ERROR|radio not active"},
		{payloadWifiScan("Cisco-Lobby", "00:1a:9c:02:10:af", -48), "WIFI_SCAN|SSID:Cisco-Lobby|MAC:00:1a:9c:02:10:af|RSSI:-48"},
		{payloadWifiCracked("Cisco-Lobby", "admin"), "WIFI_CRACKED|SSID:Cisco-Lobby|PASS:admin"},
		{payloadBLE("c0:98:e5:49:00:01", "NoName", -77), "BLE|MAC:c0:98:e5:49:00:01|NAME:NoName|RSSI:-77"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("got %q, want %q", c.got, c.want)
		}
	}
}
