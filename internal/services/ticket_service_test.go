package services

import (
	"context"
	"errors"
	"testing"

	"events-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTicketStore struct {
	verifyCalls []string
	ticket      *models.TicketRecord
	verifyErr   error

	markCalls  [][2]string
	markResult string
	markErr    error
}

func (f *fakeTicketStore) VerifyTicket(_ context.Context, ticketID string) (*models.TicketRecord, error) {
	f.verifyCalls = append(f.verifyCalls, ticketID)
	return f.ticket, f.verifyErr
}

func (f *fakeTicketStore) MarkTicketUsed(_ context.Context, ticketID, verifiedBy string) (string, error) {
	f.markCalls = append(f.markCalls, [2]string{ticketID, verifiedBy})
	return f.markResult, f.markErr
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func bundleTicket(useCount, total int) *models.TicketRecord {
	return &models.TicketRecord{
		TicketIdentifier: "TKT-001",
		CustomerName:     "Awa Diop",
		EventTitle:       "Launch Night",
		UseCount:         intPtr(useCount),
		TotalQuantity:    intPtr(total),
	}
}

func TestVerifyAndAdmit_EmptyIdentifier(t *testing.T) {
	store := &fakeTicketStore{}
	svc := NewTicketService(store)

	for _, id := range []string{"", "   ", "\t\n"} {
		result := svc.VerifyAndAdmit(context.Background(), id, "gate-1", true)
		assert.False(t, result.Success)
		assert.Equal(t, models.CodeInvalidInput, result.ErrorCode)
	}
	// No remote call may happen for invalid input.
	assert.Empty(t, store.verifyCalls)
	assert.Empty(t, store.markCalls)
}

func TestVerifyAndAdmit_TrimsIdentifier(t *testing.T) {
	store := &fakeTicketStore{ticket: bundleTicket(0, 2), markResult: models.MarkResultSuccess}
	svc := NewTicketService(store)

	result := svc.VerifyAndAdmit(context.Background(), "  TKT-001  ", "gate-1", true)
	assert.True(t, result.Admitted)
	require.Len(t, store.verifyCalls, 1)
	assert.Equal(t, "TKT-001", store.verifyCalls[0])
}

func TestVerifyAndAdmit_VerificationError(t *testing.T) {
	store := &fakeTicketStore{verifyErr: errors.New("rpc failure")}
	svc := NewTicketService(store)

	result := svc.VerifyAndAdmit(context.Background(), "TKT-001", "gate-1", true)
	assert.False(t, result.Success)
	assert.Equal(t, models.CodeVerificationFailed, result.ErrorCode)
	assert.Empty(t, store.markCalls)
}

func TestVerifyAndAdmit_NotFound(t *testing.T) {
	store := &fakeTicketStore{}
	svc := NewTicketService(store)

	result := svc.VerifyAndAdmit(context.Background(), "TKT-404", "gate-1", true)
	assert.False(t, result.Success)
	assert.Equal(t, models.CodeTicketNotFound, result.ErrorCode)
	assert.Empty(t, store.markCalls)
}

func TestVerifyAndAdmit_BundleLifecycle(t *testing.T) {
	// A two-admission bundle admits twice, then reports ALREADY_USED.
	for _, tc := range []struct {
		useCount     int
		wantAdmitted bool
	}{
		{useCount: 0, wantAdmitted: true},
		{useCount: 1, wantAdmitted: true},
		{useCount: 2, wantAdmitted: false},
	} {
		store := &fakeTicketStore{ticket: bundleTicket(tc.useCount, 2), markResult: models.MarkResultSuccess}
		svc := NewTicketService(store)

		result := svc.VerifyAndAdmit(context.Background(), "TKT-001", "gate-1", true)
		assert.True(t, result.Success, "use_count=%d", tc.useCount)
		assert.Equal(t, tc.wantAdmitted, result.Admitted, "use_count=%d", tc.useCount)
		if tc.wantAdmitted {
			require.Len(t, store.markCalls, 1)
			assert.Equal(t, [2]string{"TKT-001", "gate-1"}, store.markCalls[0])
		} else {
			assert.Equal(t, models.CodeAlreadyUsed, result.ErrorCode)
			assert.Empty(t, store.markCalls)
		}
	}
}

func TestVerifyAndAdmit_LegacySingleUse(t *testing.T) {
	fresh := &models.TicketRecord{TicketIdentifier: "TKT-002", IsUsed: boolPtr(false)}
	store := &fakeTicketStore{ticket: fresh, markResult: models.MarkResultSuccess}
	svc := NewTicketService(store)

	result := svc.VerifyAndAdmit(context.Background(), "TKT-002", "gate-1", true)
	assert.True(t, result.Admitted)

	used := &models.TicketRecord{TicketIdentifier: "TKT-002", IsUsed: boolPtr(true)}
	store = &fakeTicketStore{ticket: used}
	svc = NewTicketService(store)

	result = svc.VerifyAndAdmit(context.Background(), "TKT-002", "gate-1", true)
	assert.True(t, result.Success)
	assert.False(t, result.Admitted)
	assert.Equal(t, models.CodeAlreadyUsed, result.ErrorCode)
	assert.Empty(t, store.markCalls)
}

func TestVerifyAndAdmit_NoAutoAdmit(t *testing.T) {
	store := &fakeTicketStore{ticket: bundleTicket(0, 2)}
	svc := NewTicketService(store)

	result := svc.VerifyAndAdmit(context.Background(), "TKT-001", "gate-1", false)
	assert.True(t, result.Success)
	assert.False(t, result.Admitted)
	assert.Empty(t, result.ErrorCode)
	assert.Empty(t, store.markCalls)
	require.NotNil(t, result.Ticket)
	assert.Equal(t, "Awa Diop", result.Ticket.CustomerName)
}

func TestVerifyAndAdmit_LostAdmissionRace(t *testing.T) {
	store := &fakeTicketStore{ticket: bundleTicket(1, 2), markResult: models.MarkResultAlreadyUsed}
	svc := NewTicketService(store)

	result := svc.VerifyAndAdmit(context.Background(), "TKT-001", "gate-1", true)
	assert.True(t, result.Success)
	assert.False(t, result.Admitted)
	assert.Equal(t, models.CodeAlreadyUsed, result.ErrorCode)
}

func TestVerifyAndAdmit_DuplicateScan(t *testing.T) {
	store := &fakeTicketStore{ticket: bundleTicket(0, 2), markResult: models.MarkResultDuplicateScan}
	svc := NewTicketService(store)

	result := svc.VerifyAndAdmit(context.Background(), "TKT-001", "gate-1", true)
	assert.True(t, result.Success)
	assert.False(t, result.Admitted)
	assert.Equal(t, models.CodeDuplicateScan, result.ErrorCode)
}

func TestVerifyAndAdmit_MarkFailure(t *testing.T) {
	store := &fakeTicketStore{ticket: bundleTicket(0, 2), markErr: errors.New("rpc failure")}
	svc := NewTicketService(store)

	result := svc.VerifyAndAdmit(context.Background(), "TKT-001", "gate-1", true)
	assert.True(t, result.Success)
	assert.False(t, result.Admitted)
	assert.Equal(t, models.CodeAdmissionFailed, result.ErrorCode)
}

func TestVerifyAndAdmit_UnexpectedMarkResult(t *testing.T) {
	store := &fakeTicketStore{ticket: bundleTicket(0, 2), markResult: "WAT"}
	svc := NewTicketService(store)

	result := svc.VerifyAndAdmit(context.Background(), "TKT-001", "gate-1", true)
	assert.True(t, result.Success)
	assert.False(t, result.Admitted)
	assert.Equal(t, models.CodeAdmissionFailed, result.ErrorCode)
}
