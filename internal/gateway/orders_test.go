package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/jinacker/smart-wms-gateway/internal/domain"
)

func TestOrders_UpdateStatus_VerbFallbackWalksCandidates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/orders/482/status", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
	mux.HandleFunc("/orders/482", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var body statusUpdate
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status != domain.OrderStatusApproved {
			t.Errorf("body = %+v (%v)", body, err)
		}
		writeJSON(w, domain.Order{ID: 482, Status: domain.OrderStatusApproved})
	})
	srv := newRecordingServer(t, mux)

	c := New(srv.URL, WithBearerAuth(testBearer("tok")))
	order, err := c.Orders.UpdateStatus(context.Background(), "482-3", domain.OrderStatusApproved)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if order.ID != 482 || order.Status != domain.OrderStatusApproved {
		t.Fatalf("order = %+v", order)
	}

	want := []string{
		"PUT /orders/482/status",
		"PATCH /orders/482",
		"PUT /orders/482",
	}
	got := srv.requests()
	if len(got) != 3 {
		t.Fatalf("requests = %v; want exactly 3", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("request %d = %q; want %q", i, got[i], want[i])
		}
	}
}

func TestOrders_UpdateStatus_FirstShapeSucceeds(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/orders/482/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, domain.Order{ID: 482, Status: domain.OrderStatusCompleted})
	})
	srv := newRecordingServer(t, mux)

	c := New(srv.URL, WithBearerAuth(testBearer("tok")))
	if _, err := c.Orders.UpdateStatus(context.Background(), "482-0", domain.OrderStatusCompleted); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if n := len(srv.requests()); n != 1 {
		t.Fatalf("requests = %v; want 1", srv.requests())
	}
}

func TestOrders_UpdateStatus_OtherRejectionStopsProbe(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/orders/482/status", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
	mux.HandleFunc("/orders/482", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"code":"invalid_transition","message":"order already completed"}`))
	})
	srv := newRecordingServer(t, mux)

	c := New(srv.URL, WithBearerAuth(testBearer("tok")))
	_, err := c.Orders.UpdateStatus(context.Background(), "482-1", domain.OrderStatusApproved)

	var ae *APIError
	if !errors.As(err, &ae) || ae.StatusCode != http.StatusConflict || ae.Code != "invalid_transition" {
		t.Fatalf("err = %v", err)
	}
	if n := len(srv.requests()); n != 2 {
		t.Fatalf("requests = %v; probing must stop at the conflict", srv.requests())
	}
}

func TestOrders_UpdateStatus_AllShapesRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
	srv := newRecordingServer(t, mux)

	c := New(srv.URL, WithBearerAuth(testBearer("tok")))
	_, err := c.Orders.UpdateStatus(context.Background(), "482-1", domain.OrderStatusApproved)
	if !IsMethodNotAllowed(err) {
		t.Fatalf("err = %v; want method-not-allowed", err)
	}
	if n := len(srv.requests()); n != 3 {
		t.Fatalf("requests = %v; want all 3 candidates", srv.requests())
	}
}

func TestOrders_CompositeRef_FailsBeforeNetwork(t *testing.T) {
	srv := newRecordingServer(t, http.NewServeMux())
	c := New(srv.URL, WithBearerAuth(testBearer("tok")))
	ctx := context.Background()

	for _, ref := range []string{"", "abc-3", "482"} {
		if _, err := c.Orders.UpdateStatus(ctx, ref, domain.OrderStatusApproved); !errors.Is(err, domain.ErrInvalidLineRef) {
			t.Errorf("UpdateStatus(%q) err = %v", ref, err)
		}
		if err := c.Orders.Cancel(ctx, ref); !errors.Is(err, domain.ErrInvalidLineRef) {
			t.Errorf("Cancel(%q) err = %v", ref, err)
		}
		if _, err := c.Orders.UpdateLine(ctx, ref, LineUpdate{Quantity: 1}); !errors.Is(err, domain.ErrInvalidLineRef) {
			t.Errorf("UpdateLine(%q) err = %v", ref, err)
		}
	}

	if got := srv.requests(); len(got) != 0 {
		t.Fatalf("invalid refs must not reach the network: %v", got)
	}
}

func TestOrders_Cancel(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/orders/12/cancel", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	srv := newRecordingServer(t, mux)

	c := New(srv.URL, WithBearerAuth(testBearer("tok")))
	if err := c.Orders.Cancel(context.Background(), "12-0"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
}

func TestOrders_UpdateLine(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/orders/12/items/2", func(w http.ResponseWriter, r *http.Request) {
		var body LineUpdate
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Quantity != 40 || body.RackCode != "A-01" {
			t.Errorf("body = %+v (%v)", body, err)
		}
		writeJSON(w, domain.Order{ID: 12})
	})
	srv := newRecordingServer(t, mux)

	c := New(srv.URL, WithBearerAuth(testBearer("tok")))
	order, err := c.Orders.UpdateLine(context.Background(), "12-2", LineUpdate{Quantity: 40, RackCode: "A-01"})
	if err != nil {
		t.Fatalf("UpdateLine: %v", err)
	}
	if order.ID != 12 {
		t.Fatalf("order = %+v", order)
	}
}
