package entities

import "testing"

func TestOrderStatus_CanAdvanceTo(t *testing.T) {
	all := []OrderStatus{
		OrderStatusPending, OrderStatusAccepted, OrderStatusArrived,
		OrderStatusCooking, OrderStatusCompleted, OrderStatusCancelled,
	}
	legal := map[[2]OrderStatus]bool{
		{OrderStatusAccepted, OrderStatusArrived}:  true,
		{OrderStatusArrived, OrderStatusCooking}:   true,
		{OrderStatusCooking, OrderStatusCompleted}: true,
	}

	for _, from := range all {
		for _, to := range all {
			want := legal[[2]OrderStatus{from, to}]
			if got := from.CanAdvanceTo(to); got != want {
				t.Fatalf("%s -> %s: expected %v, got %v", from, to, want, got)
			}
		}
	}
}

func TestPreviousForAdvance(t *testing.T) {
	from, ok := PreviousForAdvance(OrderStatusCompleted)
	if !ok || from != OrderStatusCooking {
		t.Fatalf("expected cooking, got %q ok=%v", from, ok)
	}
	if _, ok := PreviousForAdvance(OrderStatusAccepted); ok {
		t.Fatalf("accepted must not be an advance target")
	}
	if _, ok := PreviousForAdvance(OrderStatusCancelled); ok {
		t.Fatalf("cancelled must not be an advance target")
	}
}

func TestOrderStatus_Flags(t *testing.T) {
	if !OrderStatusCompleted.IsTerminal() || !OrderStatusCancelled.IsTerminal() || OrderStatusCooking.IsTerminal() {
		t.Fatalf("unexpected terminal flags")
	}
	if !OrderStatusPending.Cancellable() || !OrderStatusAccepted.Cancellable() || OrderStatusArrived.Cancellable() {
		t.Fatalf("unexpected cancellable flags")
	}
	if OrderStatus("delivered").Valid() {
		t.Fatalf("unknown status must be invalid")
	}
}

func TestOrder_IsParticipant(t *testing.T) {
	o := Order{ClientID: "client-1", CookID: "cook-1"}
	if !o.IsParticipant("client-1") || !o.IsParticipant("cook-1") {
		t.Fatalf("client and cook must be participants")
	}
	if o.IsParticipant("cook-2") || o.IsParticipant("") {
		t.Fatalf("unexpected participant")
	}
	pending := Order{ClientID: "client-1"}
	if pending.IsParticipant("") {
		t.Fatalf("empty id must never match an unassigned cook")
	}
}

func TestPaymentStatusFromProvider(t *testing.T) {
	cases := map[string]PaymentStatus{
		"approved":   PaymentStatusApproved,
		"rejected":   PaymentStatusRejected,
		"in_process": PaymentStatusPending,
		"pending":    PaymentStatusPending,
		"":           PaymentStatusPending,
	}
	for in, want := range cases {
		if got := PaymentStatusFromProvider(in); got != want {
			t.Fatalf("%q: expected %s, got %s", in, want, got)
		}
	}
}
