package ingress

import "testing"

func TestInboxSubmitToUnknownSlotIsNoop(t *testing.T) {
	ib := NewInbox(8, 1000)
	if ib.Submit(0, Input{Seq: 1}) {
		t.Fatal("submit to a slot never added via AddPlayer should be dropped")
	}
}

func TestInboxAddPlayerThenSubmitDrain(t *testing.T) {
	ib := NewInbox(8, 1000)
	ib.AddPlayer(3)

	if !ib.Submit(3, Input{Seq: 1, Throttle: 0.7}) {
		t.Fatal("submit to a registered slot should be accepted")
	}
	in, ok := ib.Drain(3)
	if !ok || in.Throttle != 0.7 {
		t.Fatalf("Drain(3) = %+v, %v; want throttle=0.7", in, ok)
	}
}

func TestInboxAddPlayerIsIdempotent(t *testing.T) {
	ib := NewInbox(8, 1000)
	ib.AddPlayer(0)
	ib.Submit(0, Input{Seq: 1})
	ib.AddPlayer(0) // must not reset the existing buffer's seq state

	if ib.Submit(0, Input{Seq: 1}) {
		t.Fatal("re-adding a player should not reset accepted-seq tracking")
	}
}

func TestInboxDrainUnknownSlot(t *testing.T) {
	ib := NewInbox(8, 1000)
	if _, ok := ib.Drain(9); ok {
		t.Fatal("draining an unregistered slot should report nothing")
	}
}
