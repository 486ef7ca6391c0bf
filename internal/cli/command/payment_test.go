package command

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/sharepay/sharepay-go/internal/cli/connection"
	"github.com/sharepay/sharepay-go/internal/core/domain"
)

func paymentHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		jsonResponse(w, http.StatusOK, map[string]any{
			"id": 5, "amount": 900, "currency": "TWD", "description": "taxi",
			"date": "2026-02-14", "payer_trip_member_id": 1, "split_with": []int{1, 2},
		})
	case http.MethodPut:
		jsonResponse(w, http.StatusOK, map[string]string{"message": "payment updated"})
	}
}

func TestPaymentAdd(t *testing.T) {
	f := newCLIFixture(t)
	f.login("acc", "ref")
	f.mux.HandleFunc("/api/trips/3/payments", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]string{"message": "payment added"})
	})

	out, err := f.run("", "payment", "add", "--amount", "1200", "-d", "dinner", "--split", "1", "--split", "2", "3")
	if err != nil {
		t.Fatalf("payment add: %v", err)
	}
	if !strings.Contains(out, "payment added: dinner $1,200") {
		t.Errorf("output:\n%s", out)
	}

	var sent domain.PaymentInput
	if err := json.Unmarshal([]byte(f.requestsTo("/api/trips/3/payments")[0].Body), &sent); err != nil {
		t.Fatal(err)
	}
	if sent.TripID != 3 || sent.Amount != 1200 || len(sent.SplitWith) != 2 || sent.Currency != "TWD" {
		t.Errorf("sent = %+v", sent)
	}
}

func TestPaymentAddRejectsBadAmount(t *testing.T) {
	f := newCLIFixture(t)
	f.login("acc", "ref")

	_, err := f.run("", "payment", "add", "--amount", "-5", "-d", "x", "--split", "1", "3")
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("err = %v", err)
	}
	if n := len(f.requests()); n != 0 {
		t.Errorf("%d requests sent", n)
	}
}

func TestPaymentGet(t *testing.T) {
	f := newCLIFixture(t)
	f.login("acc", "ref")
	f.mux.HandleFunc("/api/payments/5", paymentHandler)

	out, err := f.run("", "payment", "get", "5")
	if err != nil {
		t.Fatalf("payment get: %v", err)
	}
	for _, want := range []string{"taxi", "$900", "2026/2/14", "1, 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPaymentUpdateAsksFirst(t *testing.T) {
	f := newCLIFixture(t)
	f.login("acc", "ref")
	f.mux.HandleFunc("/api/payments/5", paymentHandler)

	out, err := f.run("n\n", "payment", "update", "--amount", "950", "5")
	if err != nil {
		t.Fatalf("payment update: %v", err)
	}
	if !strings.Contains(out, "Cancelled.") {
		t.Errorf("output:\n%s", out)
	}
	for _, r := range f.requestsTo("/api/payments/5") {
		if r.Method == http.MethodPut {
			t.Fatal("PUT sent without confirmation")
		}
	}

	out, err = f.run("", "payment", "update", "--amount", "950", "--yes", "5")
	if err != nil {
		t.Fatalf("payment update: %v", err)
	}
	if !strings.Contains(out, "payment updated") {
		t.Errorf("output:\n%s", out)
	}
	reqs := f.requestsTo("/api/payments/5")
	last := reqs[len(reqs)-1]
	if last.Method != http.MethodPut || last.Body != `{"amount":950,"split_with":[1,2]}` {
		t.Errorf("update = %+v", last)
	}
}

func TestPaymentUpdateForbidden(t *testing.T) {
	f := newCLIFixture(t)
	f.login("acc", "ref")
	f.mux.HandleFunc("/api/payments/6", func(w http.ResponseWriter, r *http.Request) {
		errorResponse(w, http.StatusForbidden, "only the payer can edit")
	})

	_, err := f.run("", "payment", "update", "--split", "1", "-y", "6")
	var se *connection.ServerError
	if !errors.As(err, &se) || se.Status != http.StatusForbidden {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(FormatError(err), "only the payer can edit") {
		t.Errorf("FormatError = %q", FormatError(err))
	}
}
