package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/reusse-app/backend/internal/model"
)

type requestFixture struct {
	requests *fakeRequestRepo
	profiles *fakeProfileRepo
	notes    *fakeNotificationRepo
	svc      RequestService
}

func newRequestFixture(t *testing.T, strictFlow bool) *requestFixture {
	t.Helper()
	f := &requestFixture{
		requests: newFakeRequestRepo(),
		profiles: newFakeProfileRepo(),
		notes:    newFakeNotificationRepo(),
	}
	f.svc = NewRequestService(f.requests, f.profiles, NewNotificationService(f.notes), strictFlow)
	return f
}

func (f *requestFixture) addProfile(t *testing.T, userID string, role model.Role, status model.ProfileStatus) {
	t.Helper()
	err := f.profiles.Create(context.Background(), &model.Profile{
		UserID: userID,
		Role:   role,
		Status: status,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func (f *requestFixture) addRequest(t *testing.T, sellerID string) *model.Request {
	t.Helper()
	req := &model.Request{
		SellerID:    sellerID,
		ServiceType: model.ServiceTypeClassic,
		Status:      model.RequestStatusPending,
		ItemCount:   5,
	}
	if err := f.requests.Create(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return req
}

func TestRequestCreateRequiresSeller(t *testing.T) {
	f := newRequestFixture(t, false)
	f.addProfile(t, "reusse-1", model.RoleReusse, model.ProfileStatusApproved)

	_, err := f.svc.Create(context.Background(), "reusse-1", CreateRequestInput{
		ServiceType: model.ServiceTypeClassic,
		ItemCount:   3,
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("got=%v want=%v", err, ErrForbidden)
	}
}

func TestRequestCreateValidation(t *testing.T) {
	f := newRequestFixture(t, false)
	f.addProfile(t, "seller-1", model.RoleSeller, model.ProfileStatusApproved)
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, "seller-1", CreateRequestInput{ServiceType: "weird", ItemCount: 3}); err == nil {
		t.Fatal("expected error for invalid service type")
	}
	if _, err := f.svc.Create(ctx, "seller-1", CreateRequestInput{ServiceType: model.ServiceTypeExpress, ItemCount: 0}); err == nil {
		t.Fatal("expected error for zero item count")
	}

	req, err := f.svc.Create(ctx, "seller-1", CreateRequestInput{ServiceType: model.ServiceTypeExpress, ItemCount: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Status != model.RequestStatusPending {
		t.Fatalf("status got=%s want=%s", req.Status, model.RequestStatusPending)
	}
}

func TestRequestAccept(t *testing.T) {
	f := newRequestFixture(t, false)
	f.addProfile(t, "reusse-1", model.RoleReusse, model.ProfileStatusApproved)
	req := f.addRequest(t, "seller-1")

	got, err := f.svc.Accept(context.Background(), req.ID, "reusse-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != model.RequestStatusMatched {
		t.Fatalf("status got=%s want=%s", got.Status, model.RequestStatusMatched)
	}
	if got.ReusseID == nil || *got.ReusseID != "reusse-1" {
		t.Fatalf("reusseID got=%v want=reusse-1", got.ReusseID)
	}
	if n := f.notes.byType("request_matched"); len(n) != 1 || n[0].UserID != "seller-1" {
		t.Fatalf("seller not notified: %v", n)
	}
}

func TestRequestAcceptRequiresApprovedReusse(t *testing.T) {
	tests := []struct {
		name   string
		role   model.Role
		status model.ProfileStatus
	}{
		{"seller cannot accept", model.RoleSeller, model.ProfileStatusApproved},
		{"pending reusse cannot accept", model.RoleReusse, model.ProfileStatusPending},
		{"rejected reusse cannot accept", model.RoleReusse, model.ProfileStatusRejected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRequestFixture(t, false)
			f.addProfile(t, "user-1", tt.role, tt.status)
			req := f.addRequest(t, "seller-1")

			_, err := f.svc.Accept(context.Background(), req.ID, "user-1")
			if !errors.Is(err, ErrForbidden) {
				t.Fatalf("got=%v want=%v", err, ErrForbidden)
			}
		})
	}
}

func TestRequestAcceptExactlyOnce(t *testing.T) {
	f := newRequestFixture(t, false)
	f.addProfile(t, "reusse-1", model.RoleReusse, model.ProfileStatusApproved)
	f.addProfile(t, "reusse-2", model.RoleReusse, model.ProfileStatusApproved)
	req := f.addRequest(t, "seller-1")

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i, uid := range []string{"reusse-1", "reusse-2"} {
		wg.Add(1)
		go func(i int, uid string) {
			defer wg.Done()
			_, errs[i] = f.svc.Accept(context.Background(), req.ID, uid)
		}(i, uid)
	}
	wg.Wait()

	wins, losses := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrUnavailable):
			losses++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || losses != 1 {
		t.Fatalf("wins=%d losses=%d want exactly one of each", wins, losses)
	}
}

func TestRequestAcceptNotPending(t *testing.T) {
	f := newRequestFixture(t, false)
	f.addProfile(t, "reusse-1", model.RoleReusse, model.ProfileStatusApproved)
	req := f.addRequest(t, "seller-1")
	mustUpdate(t, f.requests, req.ID, map[string]interface{}{"status": model.RequestStatusCancelled})

	_, err := f.svc.Accept(context.Background(), req.ID, "reusse-1")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("got=%v want=%v", err, ErrUnavailable)
	}
}

func TestRequestCancel(t *testing.T) {
	tests := []struct {
		name    string
		uid     string
		wantErr error
	}{
		{"seller can cancel", "seller-1", nil},
		{"assigned reusse can cancel", "reusse-1", nil},
		{"admin can cancel", "admin-1", nil},
		{"stranger cannot cancel", "stranger", ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRequestFixture(t, false)
			f.addProfile(t, "reusse-1", model.RoleReusse, model.ProfileStatusApproved)
			f.addProfile(t, "admin-1", model.RoleAdmin, model.ProfileStatusApproved)
			req := f.addRequest(t, "seller-1")
			if _, err := f.svc.Accept(context.Background(), req.ID, "reusse-1"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got, err := f.svc.Cancel(context.Background(), req.ID, tt.uid)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got=%v want=%v", err, tt.wantErr)
			}
			if tt.wantErr == nil && got.Status != model.RequestStatusCancelled {
				t.Fatalf("status got=%s want=%s", got.Status, model.RequestStatusCancelled)
			}
		})
	}
}

func TestRequestCancelTerminal(t *testing.T) {
	f := newRequestFixture(t, false)
	req := f.addRequest(t, "seller-1")
	ctx := context.Background()

	if _, err := f.svc.Complete(ctx, req.ID, "seller-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := f.svc.Cancel(ctx, req.ID, "seller-1")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("got=%v want=%v", err, ErrConflict)
	}
}

func TestRequestComplete(t *testing.T) {
	f := newRequestFixture(t, false)
	f.addProfile(t, "reusse-1", model.RoleReusse, model.ProfileStatusApproved)
	req := f.addRequest(t, "seller-1")
	ctx := context.Background()
	if _, err := f.svc.Accept(ctx, req.ID, "reusse-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := f.svc.Complete(ctx, req.ID, "reusse-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != model.RequestStatusCompleted {
		t.Fatalf("status got=%s want=%s", got.Status, model.RequestStatusCompleted)
	}
	if got.CompletedAt == nil {
		t.Fatal("completedAt not set")
	}
	if n := f.notes.byType("request_completed"); len(n) != 1 || n[0].UserID != "seller-1" {
		t.Fatalf("counterpart not notified: %v", n)
	}

	// Completing twice is a conflict.
	if _, err := f.svc.Complete(ctx, req.ID, "seller-1"); !errors.Is(err, ErrConflict) {
		t.Fatalf("got=%v want=%v", err, ErrConflict)
	}
}

func TestRequestCompleteForbiddenForStranger(t *testing.T) {
	f := newRequestFixture(t, false)
	req := f.addRequest(t, "seller-1")

	_, err := f.svc.Complete(context.Background(), req.ID, "stranger")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("got=%v want=%v", err, ErrForbidden)
	}
}

func TestAdvanceStatusDefaultFlow(t *testing.T) {
	f := newRequestFixture(t, false)
	req := f.addRequest(t, "seller-1")
	ctx := context.Background()
	mustUpdate(t, f.requests, req.ID, map[string]interface{}{"status": model.RequestStatusInProgress})

	// Latest action wins: a new meeting pulls the request back.
	if err := f.svc.AdvanceStatus(ctx, req.ID, model.RequestStatusScheduled); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := f.requests.FindByID(ctx, req.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != model.RequestStatusScheduled {
		t.Fatalf("status got=%s want=%s", got.Status, model.RequestStatusScheduled)
	}
}

func TestAdvanceStatusStrictFlow(t *testing.T) {
	f := newRequestFixture(t, true)
	req := f.addRequest(t, "seller-1")
	ctx := context.Background()
	mustUpdate(t, f.requests, req.ID, map[string]interface{}{"status": model.RequestStatusInProgress})

	// Backward move is ignored.
	if err := f.svc.AdvanceStatus(ctx, req.ID, model.RequestStatusScheduled); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := f.requests.FindByID(ctx, req.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != model.RequestStatusInProgress {
		t.Fatalf("status got=%s want=%s", got.Status, model.RequestStatusInProgress)
	}

	// Forward move still applies.
	if err := f.svc.AdvanceStatus(ctx, req.ID, model.RequestStatusCompleted); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ = f.requests.FindByID(ctx, req.ID)
	if got.Status != model.RequestStatusCompleted {
		t.Fatalf("status got=%s want=%s", got.Status, model.RequestStatusCompleted)
	}

	// Terminal state stays put.
	if err := f.svc.AdvanceStatus(ctx, req.ID, model.RequestStatusInProgress); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ = f.requests.FindByID(ctx, req.ID)
	if got.Status != model.RequestStatusCompleted {
		t.Fatalf("status got=%s want=%s", got.Status, model.RequestStatusCompleted)
	}
}

func TestRequestListForUser(t *testing.T) {
	f := newRequestFixture(t, false)
	f.addProfile(t, "reusse-1", model.RoleReusse, model.ProfileStatusApproved)
	a := f.addRequest(t, "seller-1")
	f.addRequest(t, "seller-2")
	ctx := context.Background()
	if _, err := f.svc.Accept(ctx, a.ID, "reusse-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sellers, err := f.svc.ListForUser(ctx, "seller-1", model.RoleSeller)
	if err != nil || len(sellers) != 1 {
		t.Fatalf("seller list got=%d err=%v want 1", len(sellers), err)
	}
	assigned, err := f.svc.ListForUser(ctx, "reusse-1", model.RoleReusse)
	if err != nil || len(assigned) != 1 {
		t.Fatalf("reusse list got=%d err=%v want 1", len(assigned), err)
	}
	all, err := f.svc.ListForUser(ctx, "admin-1", model.RoleAdmin)
	if err != nil || len(all) != 2 {
		t.Fatalf("admin list got=%d err=%v want 2", len(all), err)
	}

	available, err := f.svc.ListAvailable(ctx)
	if err != nil || len(available) != 1 {
		t.Fatalf("available got=%d err=%v want 1", len(available), err)
	}
}

func mustUpdate(t *testing.T, repo *fakeRequestRepo, id uint64, updates map[string]interface{}) {
	t.Helper()
	if err := repo.Update(context.Background(), id, updates); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
