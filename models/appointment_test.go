package models

import (
	"errors"
	"testing"
	"time"
)

func TestAppointmentTransitions(t *testing.T) {
	allowed := []struct {
		from, to AppointmentStatus
	}{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusCanceled},
		{StatusConfirmed, StatusInProgress},
		{StatusConfirmed, StatusCanceled},
		{StatusConfirmed, StatusNoShow},
		{StatusInProgress, StatusCompleted},
	}
	for _, tc := range allowed {
		a := &Appointment{Status: tc.from}
		if err := a.Transition(tc.to); err != nil {
			t.Errorf("%s -> %s: unexpected error %v", tc.from, tc.to, err)
		}
		if a.Status != tc.to {
			t.Errorf("%s -> %s: status = %s after transition", tc.from, tc.to, a.Status)
		}
	}

	denied := []struct {
		from, to AppointmentStatus
	}{
		{StatusPending, StatusInProgress},
		{StatusPending, StatusCompleted},
		{StatusPending, StatusNoShow},
		{StatusConfirmed, StatusCompleted},
		{StatusInProgress, StatusCanceled},
		{StatusInProgress, StatusNoShow},
	}
	for _, tc := range denied {
		a := &Appointment{Status: tc.from}
		if err := a.Transition(tc.to); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("%s -> %s: error = %v, want ErrInvalidTransition", tc.from, tc.to, err)
		}
		if a.Status != tc.from {
			t.Errorf("%s -> %s: status changed on rejected transition", tc.from, tc.to)
		}
	}
}

func TestTerminalStatesRejectEveryMove(t *testing.T) {
	targets := []AppointmentStatus{
		StatusPending, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCanceled, StatusNoShow,
	}
	for _, terminal := range []AppointmentStatus{StatusCompleted, StatusCanceled, StatusNoShow} {
		a := &Appointment{Status: terminal}
		if !a.Terminal() {
			t.Errorf("Terminal() = false for %s", terminal)
		}
		for _, next := range targets {
			if err := a.CanTransition(next); !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("%s -> %s: error = %v, want ErrInvalidTransition", terminal, next, err)
			}
		}
	}
}

func TestOccupying(t *testing.T) {
	cases := []struct {
		status AppointmentStatus
		want   bool
	}{
		{StatusPending, true},
		{StatusConfirmed, true},
		{StatusInProgress, true},
		{StatusCompleted, true},
		{StatusCanceled, false},
		{StatusNoShow, false},
	}
	for _, tc := range cases {
		a := &Appointment{Status: tc.status}
		if got := a.Occupying(); got != tc.want {
			t.Errorf("Occupying() = %v for %s, want %v", got, tc.status, tc.want)
		}
	}
}

func TestAppointmentBeforeCreate(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	a := &Appointment{StartTime: start, EndTime: start.Add(time.Hour)}
	if err := a.BeforeCreate(nil); err != nil {
		t.Fatalf("BeforeCreate() error = %v", err)
	}
	if a.Status != StatusPending {
		t.Errorf("status = %s, want default %s", a.Status, StatusPending)
	}

	a = &Appointment{StartTime: start, EndTime: start, Status: StatusConfirmed}
	if err := a.BeforeCreate(nil); err == nil {
		t.Error("BeforeCreate() accepted a zero-length appointment")
	}
	if a.Status != StatusConfirmed {
		t.Errorf("status = %s, explicit status must survive", a.Status)
	}

	a = &Appointment{StartTime: start, EndTime: start.Add(-time.Minute)}
	if err := a.BeforeCreate(nil); err == nil {
		t.Error("BeforeCreate() accepted end before start")
	}
}
