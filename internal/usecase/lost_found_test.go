package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"airops-service/internal/domain/entity"
	domainrepo "airops-service/internal/domain/repository"
	"airops-service/internal/domain/repository/mocks"
	"airops-service/internal/interface/repository"
	"airops-service/internal/usecase"
	"airops-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newLostFound(t *testing.T) (*usecase.LostFoundService, *repository.SessionStore, *mocks.MockMailer) {
	t.Helper()

	store := repository.NewSessionStore(nil)
	mailer := &mocks.MockMailer{}
	mailer.On("Send", mock.Anything, mock.Anything).Return(entity.SendResult{Success: true, MessageID: testMessageID}).Maybe()

	log := logger.NewNopLogger()
	dispatcher := usecase.NewEmailDispatcher(context.Background(), mailer, store.SentEmails(), store.Logs(), nil, log, time.Second)
	t.Cleanup(dispatcher.Wait)

	return usecase.NewLostFoundService(store.LostItems(), store.Logs(), dispatcher, nil, log), store, mailer
}

func TestLostFound_AddItemNumbering(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newLostFound(t)
	year := time.Now().Year()

	first, err := svc.AddItem(ctx, usecase.NewItemInput{
		Category:      "Electronics",
		Description:   "Black phone",
		LocationFound: "Gate A4",
		ContactPhone:  "020 000 000",
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("LF-%d-0001", year), first.ItemNumber)
	assert.Equal(t, "FRN00001", first.FileReference)
	assert.Equal(t, entity.ItemFound, first.Status)
	assert.Equal(t, "+37120000000", first.ContactPhone)
	assert.True(t, first.PhoneValidated)

	second, err := svc.AddItem(ctx, usecase.NewItemInput{
		Category:      "Clothing",
		Description:   "Red scarf",
		FileReference: "frn777",
		ContactPhone:  "12",
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("LF-%d-0002", year), second.ItemNumber)
	assert.Equal(t, "FRN777", second.FileReference)
	assert.False(t, second.PhoneValidated)

	bag, err := svc.AddItem(ctx, usecase.NewItemInput{
		Category: entity.CategoryBags,
		Baggage:  &entity.BaggageIdentification{Type: "22", Color: "bk", Material: "d", Element: "w"},
	})
	require.NoError(t, err)
	assert.Equal(t, "BK00001XXX", bag.ItemNumber)
	assert.Equal(t, "AHL00001", bag.FileReference)
	assert.Equal(t, "BLACK DUAL SOFT/HARD UPRIGHT DESIGN WITH WHEELS [BT:22 CL:BK MT:D EE:W]", bag.Description)
	assert.Equal(t, "[BT:22 CL:BK MT:D EE:W]", bag.Notes)
	require.NotNil(t, bag.Baggage)
	assert.Equal(t, "BK", bag.Baggage.Color)
}

func TestLostFound_AddItemValidation(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newLostFound(t)

	tests := []struct {
		name string
		in   usecase.NewItemInput
		want error
	}{
		{name: "missing category", in: usecase.NewItemInput{Description: "Umbrella"}, want: usecase.ErrValidation},
		{name: "missing description", in: usecase.NewItemInput{Category: "Other"}, want: usecase.ErrValidation},
		{name: "claimed on intake", in: usecase.NewItemInput{Category: "Other", Description: "Hat", Status: entity.ItemClaimed}, want: usecase.ErrValidation},
		{
			name: "unknown bag code",
			in:   usecase.NewItemInput{Category: entity.CategoryBags, Baggage: &entity.BaggageIdentification{Color: "ZZ"}},
			want: entity.ErrUnknownCode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddItem(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	items, err := store.LostItems().List(ctx, entity.LostItemFilter{})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestLostFound_Workflow(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newLostFound(t)

	item, err := svc.AddItem(ctx, usecase.NewItemInput{Category: "Documents", Description: "Passport"})
	require.NoError(t, err)

	_, err = svc.Claim(ctx, item.ID, usecase.ClaimInput{})
	assert.ErrorIs(t, err, usecase.ErrValidation)

	_, err = svc.Claim(ctx, item.ID, usecase.ClaimInput{ClaimantName: "JANE ROE", Phones: []string{"1", "2", "3"}})
	assert.ErrorIs(t, err, usecase.ErrValidation)

	claimed, err := svc.Claim(ctx, item.ID, usecase.ClaimInput{
		ClaimantName: "JANE ROE",
		Phones:       []string{"0044 20 7946 0000", " "},
		Address:      &entity.Address{Street: "1 Main St", City: "Riga", PostalCode: "LV-1050", Country: "LV"},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ItemClaimed, claimed.Status)
	assert.Equal(t, []string{"+442079460000"}, claimed.ClaimantPhones)
	require.NotNil(t, claimed.ClaimedAt)
	require.NotNil(t, claimed.Address)
	assert.Equal(t, "Riga", claimed.Address.City)

	_, err = svc.Suspend(ctx, item.ID)
	assert.ErrorIs(t, err, entity.ErrInvalidTransition)

	archived, err := svc.Archive(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ItemArchived, archived.Status)

	_, err = svc.Claim(ctx, item.ID, usecase.ClaimInput{ClaimantName: "JOHN DOE"})
	assert.ErrorIs(t, err, entity.ErrInvalidTransition)

	_, err = svc.Suspend(ctx, "missing")
	assert.ErrorIs(t, err, domainrepo.ErrNotFound)

	stored, err := svc.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ItemArchived, stored.Status)
	assert.Equal(t, "JANE ROE", stored.ClaimantName)
}

func TestLostFound_Update(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newLostFound(t)

	item, err := svc.AddItem(ctx, usecase.NewItemInput{Category: "Other", Description: "Umbrella"})
	require.NoError(t, err)

	description := "Blue umbrella"
	phone := "+37129999999"
	updated, err := svc.Update(ctx, item.ID, usecase.ItemUpdate{Description: &description, ContactPhone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Blue umbrella", updated.Description)
	assert.True(t, updated.PhoneValidated)

	trail, err := svc.AuditTrail(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, trail, 2)
	assert.Equal(t, fmt.Sprintf("ITEM %s UPDATED: DESCRIPTION, PHONE", item.ItemNumber), trail[1].Message)

	// no-op updates are not logged
	_, err = svc.Update(ctx, item.ID, usecase.ItemUpdate{Description: &description})
	require.NoError(t, err)
	trail, err = svc.AuditTrail(ctx, item.ID)
	require.NoError(t, err)
	assert.Len(t, trail, 2)

	_, err = svc.CloseFile(ctx, item.FileReference)
	require.NoError(t, err)

	_, err = svc.Update(ctx, item.ID, usecase.ItemUpdate{Description: &description})
	assert.ErrorIs(t, err, entity.ErrInvalidTransition)
}

func TestLostFound_ReportLostBaggageAndCloseFile(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newLostFound(t)

	items, err := svc.ReportLostBaggage(ctx, usecase.LostBaggageReport{
		PassengerName: "DOE/JOHN MR",
		ContactEmail:  "john@example.com",
		FlightNumber:  "bt 211",
		Address:       &entity.Address{Street: "5 Elm Rd", City: "London", Country: "GB"},
		Bags: []usecase.BagDescription{
			{Baggage: entity.BaggageIdentification{Type: "22", Color: "BK"}},
			{Description: "Golf bag", Baggage: entity.BaggageIdentification{Type: "25", Color: "GN"}},
		},
	})
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "BK00001XXX", items[0].ItemNumber)
	assert.Equal(t, "BK00002XXX", items[1].ItemNumber)
	for _, item := range items {
		assert.Equal(t, "AHL00001", item.FileReference)
		assert.Equal(t, entity.ItemLost, item.Status)
		assert.Equal(t, "BT 211", item.FlightNumber)
		require.NotNil(t, item.Address)
		assert.Equal(t, "London", item.Address.City)
	}
	assert.Equal(t, "Golf bag [BT:25 CL:GN]", items[1].Description)

	lost, err := svc.List(ctx, entity.LostItemFilter{Status: entity.ItemLost})
	require.NoError(t, err)
	assert.Len(t, lost, 2)

	golf, err := svc.List(ctx, entity.LostItemFilter{Query: "golf"})
	require.NoError(t, err)
	require.Len(t, golf, 1)
	assert.Equal(t, items[1].ID, golf[0].ID)

	_, err = svc.Claim(ctx, items[0].ID, usecase.ClaimInput{ClaimantName: "JOHN DOE"})
	require.NoError(t, err)

	closed, err := svc.CloseFile(ctx, "ahl00001")
	require.NoError(t, err)
	assert.Len(t, closed, 2)

	group, err := svc.List(ctx, entity.LostItemFilter{FileReference: "AHL00001"})
	require.NoError(t, err)
	for _, item := range group {
		assert.Equal(t, entity.ItemClosed, item.Status)
	}

	again, err := svc.CloseFile(ctx, "AHL00001")
	require.NoError(t, err)
	assert.Empty(t, again)

	_, err = svc.CloseFile(ctx, "AHL99999")
	assert.ErrorIs(t, err, domainrepo.ErrNotFound)

	_, err = svc.ReportLostBaggage(ctx, usecase.LostBaggageReport{PassengerName: "DOE/JOHN MR"})
	assert.ErrorIs(t, err, usecase.ErrValidation)
}

func TestLostFound_AuditTrailAndStatusUpdate(t *testing.T) {
	ctx := context.Background()
	svc, store, mailer := newLostFound(t)

	item, err := svc.AddItem(ctx, usecase.NewItemInput{Category: "Documents", Description: "Wallet", ContactEmail: "owner@example.com"})
	require.NoError(t, err)
	_, err = svc.Claim(ctx, item.ID, usecase.ClaimInput{ClaimantName: "JANE ROE"})
	require.NoError(t, err)

	result, err := svc.SendStatusUpdate(ctx, item.ID, "")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, testMessageID, result.MessageID)

	sent := mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "owner@example.com", sent[0].To)
	assert.Equal(t, fmt.Sprintf("Lost & Found update %s - CLAIMED", item.FileReference), sent[0].Subject)

	emails, err := store.SentEmails().List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, emails, 1)
	assert.Equal(t, item.ID, emails[0].ItemID)
	assert.Equal(t, entity.EmailStatusUpdate, emails[0].Kind)

	trail, err := svc.AuditTrail(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, trail, 4)
	assert.Equal(t, fmt.Sprintf("ITEM %s REGISTERED AS FOUND IN FILE %s", item.ItemNumber, item.FileReference), trail[0].Message)
	assert.Equal(t, entity.SourceLostFound, trail[0].Source)
	assert.Equal(t, fmt.Sprintf("ITEM %s CLAIMED BY JANE ROE", item.ItemNumber), trail[1].Message)
	assert.Equal(t, entity.SourceEmail, trail[2].Source)
	assert.Equal(t, entity.SourceEmail, trail[3].Source)
	for _, entry := range trail {
		assert.Equal(t, item.ID, entry.ItemID)
	}

	_, err = svc.AuditTrail(ctx, "missing")
	assert.ErrorIs(t, err, domainrepo.ErrNotFound)

	bare, err := svc.AddItem(ctx, usecase.NewItemInput{Category: "Other", Description: "Cap"})
	require.NoError(t, err)
	_, err = svc.SendStatusUpdate(ctx, bare.ID, "")
	assert.ErrorIs(t, err, usecase.ErrValidation)
}

// pausingItems holds the next FindByID once armed, until released
type pausingItems struct {
	domainrepo.LostItemRepository
	armed    chan struct{}
	paused   chan struct{}
	released chan struct{}
}

func newPausingItems(inner domainrepo.LostItemRepository) *pausingItems {
	p := &pausingItems{
		LostItemRepository: inner,
		armed:              make(chan struct{}, 1),
		paused:             make(chan struct{}),
		released:           make(chan struct{}),
	}
	p.armed <- struct{}{}
	return p
}

func (p *pausingItems) FindByID(ctx context.Context, id string) (*entity.LostItem, error) {
	item, err := p.LostItemRepository.FindByID(ctx, id)
	select {
	case <-p.armed:
		close(p.paused)
		<-p.released
	default:
	}
	return item, err
}

func TestLostFound_StaleClaimCannotReopenClosedItem(t *testing.T) {
	ctx := context.Background()
	store := repository.NewSessionStore(nil)
	log := logger.NewNopLogger()
	dispatcher := usecase.NewEmailDispatcher(ctx, &mocks.MockMailer{}, store.SentEmails(), store.Logs(), nil, log, time.Second)
	t.Cleanup(dispatcher.Wait)

	direct := usecase.NewLostFoundService(store.LostItems(), store.Logs(), dispatcher, nil, log)
	item, err := direct.AddItem(ctx, usecase.NewItemInput{Category: "Documents", Description: "Passport"})
	require.NoError(t, err)

	pausing := newPausingItems(store.LostItems())
	slow := usecase.NewLostFoundService(pausing, store.Logs(), dispatcher, nil, log)

	claimErr := make(chan error, 1)
	go func() {
		_, err := slow.Claim(ctx, item.ID, usecase.ClaimInput{ClaimantName: "JANE ROE"})
		claimErr <- err
	}()
	<-pausing.paused

	_, err = direct.Archive(ctx, item.ID)
	require.NoError(t, err)
	closed, err := direct.CloseFile(ctx, item.FileReference)
	require.NoError(t, err)
	require.Len(t, closed, 1)

	close(pausing.released)
	assert.ErrorIs(t, <-claimErr, entity.ErrInvalidTransition)

	stored, err := direct.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ItemClosed, stored.Status)
	assert.Empty(t, stored.ClaimantName)
}

// staleGroup answers FindByFRN with a fixed earlier listing
type staleGroup struct {
	domainrepo.LostItemRepository
	listing []entity.LostItem
}

func (s *staleGroup) FindByFRN(ctx context.Context, frn string) ([]entity.LostItem, error) {
	return append([]entity.LostItem(nil), s.listing...), nil
}

func TestLostFound_CloseFileRereadsChangedItem(t *testing.T) {
	ctx := context.Background()
	store := repository.NewSessionStore(nil)
	log := logger.NewNopLogger()
	dispatcher := usecase.NewEmailDispatcher(ctx, &mocks.MockMailer{}, store.SentEmails(), store.Logs(), nil, log, time.Second)
	t.Cleanup(dispatcher.Wait)

	svc := usecase.NewLostFoundService(store.LostItems(), store.Logs(), dispatcher, nil, log)
	item, err := svc.AddItem(ctx, usecase.NewItemInput{Category: "Other", Description: "Umbrella"})
	require.NoError(t, err)

	stale := *item
	err = store.LostItems().Update(ctx, &stale, entity.ItemClaimed)
	assert.ErrorIs(t, err, entity.ErrInvalidTransition)

	_, err = svc.Claim(ctx, item.ID, usecase.ClaimInput{ClaimantName: "JANE ROE"})
	require.NoError(t, err)

	closer := usecase.NewLostFoundService(&staleGroup{LostItemRepository: store.LostItems(), listing: []entity.LostItem{stale}}, store.Logs(), dispatcher, nil, log)
	closed, err := closer.CloseFile(ctx, item.FileReference)
	require.NoError(t, err)
	require.Len(t, closed, 1)
	assert.Equal(t, entity.ItemClosed, closed[0].Status)
	assert.Equal(t, "JANE ROE", closed[0].ClaimantName)

	stored, err := svc.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ItemClosed, stored.Status)
	assert.Equal(t, "JANE ROE", stored.ClaimantName)
}

func TestLostFound_ReportLostBaggageIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newLostFound(t)

	_, err := svc.ReportLostBaggage(ctx, usecase.LostBaggageReport{
		PassengerName: "DOE/JOHN MR",
		Bags: []usecase.BagDescription{
			{Description: "Black suitcase"},
			{},
		},
	})
	assert.ErrorIs(t, err, usecase.ErrValidation)

	_, err = svc.ReportLostBaggage(ctx, usecase.LostBaggageReport{
		PassengerName: "DOE/JOHN MR",
		Bags: []usecase.BagDescription{
			{Description: "Black suitcase"},
			{Baggage: entity.BaggageIdentification{Color: "ZZ"}},
		},
	})
	assert.ErrorIs(t, err, entity.ErrUnknownCode)

	_, err = svc.ReportLostBaggage(ctx, usecase.LostBaggageReport{
		PassengerName: "DOE/JOHN MR",
		ContactEmail:  "john@example.com\r\nBcc: all@example.com",
		Bags:          []usecase.BagDescription{{Description: "Black suitcase"}},
	})
	assert.ErrorIs(t, err, usecase.ErrValidation)

	items, err := store.LostItems().List(ctx, entity.LostItemFilter{})
	require.NoError(t, err)
	assert.Empty(t, items)

	filed, err := svc.ReportLostBaggage(ctx, usecase.LostBaggageReport{
		PassengerName: "DOE/JOHN MR",
		Bags:          []usecase.BagDescription{{Description: "Black suitcase"}},
	})
	require.NoError(t, err)
	require.Len(t, filed, 1)
	assert.Equal(t, "AHL00001", filed[0].FileReference)
	assert.Equal(t, "BK00001XXX", filed[0].ItemNumber)
}

func TestLostFound_RejectsInvalidEmails(t *testing.T) {
	ctx := context.Background()
	svc, _, mailer := newLostFound(t)

	_, err := svc.AddItem(ctx, usecase.NewItemInput{Category: "Other", Description: "Cap", ContactEmail: "owner@example.com\nBcc: x@example.com"})
	assert.ErrorIs(t, err, usecase.ErrValidation)

	item, err := svc.AddItem(ctx, usecase.NewItemInput{Category: "Other", Description: "Cap", ContactEmail: " owner@example.com "})
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", item.ContactEmail)

	injected := "owner@example.com\r\nBcc: x@example.com"
	_, err = svc.Update(ctx, item.ID, usecase.ItemUpdate{ContactEmail: &injected})
	assert.ErrorIs(t, err, usecase.ErrValidation)

	_, err = svc.SendStatusUpdate(ctx, item.ID, injected)
	assert.ErrorIs(t, err, usecase.ErrValidation)
	_, err = svc.SendStatusUpdate(ctx, item.ID, "Owner <owner@example.com>")
	assert.ErrorIs(t, err, usecase.ErrValidation)
	assert.Empty(t, mailer.Sent())
}
