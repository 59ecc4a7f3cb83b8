package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"airops-service/internal/domain/entity"
	"airops-service/internal/domain/repository"
	"airops-service/pkg/logger"
	"airops-service/pkg/metrics"
	"airops-service/pkg/utils"
	"airops-service/templates"

	"github.com/google/uuid"
)

var ErrValidation = errors.New("validation failed")

// closeRetries bounds how often CloseFile re-reads an item that changed
// status underneath it.
const closeRetries = 3

// Sequence names for item and file numbering
const (
	seqBagItem  = "bag_item"
	seqBagFile  = "bag_file"
	seqFile     = "file"
	seqItemYear = "item_"
)

// NewItemInput is the add-item form
type NewItemInput struct {
	Category        string                        `json:"category"`
	Description     string                        `json:"description"`
	Notes           string                        `json:"notes"`
	LocationFound   string                        `json:"locationFound"`
	FoundAt         time.Time                     `json:"foundAt"`
	FoundBy         string                        `json:"foundBy"`
	Status          entity.LostItemStatus         `json:"status"`
	FileReference   string                        `json:"fileReference"`
	FlightNumber    string                        `json:"flightNumber"`
	StorageLocation string                        `json:"storageLocation"`
	PassengerName   string                        `json:"passengerName"`
	ContactPhone    string                        `json:"contactPhone"`
	ContactEmail    string                        `json:"contactEmail"`
	Baggage         *entity.BaggageIdentification `json:"baggage"`
}

// BagDescription is one bag of a lost-baggage report
type BagDescription struct {
	Description string                       `json:"description"`
	Baggage     entity.BaggageIdentification `json:"baggage"`
}

// LostBaggageReport is a passenger's report of one or more missing bags
type LostBaggageReport struct {
	PassengerName string           `json:"passengerName"`
	ContactPhone  string           `json:"contactPhone"`
	ContactEmail  string           `json:"contactEmail"`
	FlightNumber  string           `json:"flightNumber"`
	FileReference string           `json:"fileReference"`
	Address       *entity.Address  `json:"address"`
	ReportedBy    string           `json:"reportedBy"`
	Bags          []BagDescription `json:"bags"`
}

// ItemUpdate changes descriptive fields; nil fields are left as they are
type ItemUpdate struct {
	Description     *string `json:"description"`
	Notes           *string `json:"notes"`
	LocationFound   *string `json:"locationFound"`
	StorageLocation *string `json:"storageLocation"`
	FlightNumber    *string `json:"flightNumber"`
	PassengerName   *string `json:"passengerName"`
	ContactPhone    *string `json:"contactPhone"`
	ContactEmail    *string `json:"contactEmail"`
}

// ClaimInput records who collected an item
type ClaimInput struct {
	ClaimantName string          `json:"claimantName"`
	Phones       []string        `json:"phones"`
	Address      *entity.Address `json:"address"`
}

// LostFoundService is the lost & found console: item intake, the status
// workflow, file closing and notifications.
type LostFoundService struct {
	items      repository.LostItemRepository
	logs       repository.LogRepository
	dispatcher *EmailDispatcher
	oplog      opLog
	metrics    *metrics.Metrics
	logger     logger.Logger
	now        func() time.Time
}

// NewLostFoundService creates a new lost & found service
func NewLostFoundService(
	items repository.LostItemRepository,
	logs repository.LogRepository,
	dispatcher *EmailDispatcher,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *LostFoundService {
	return &LostFoundService{
		items:      items,
		logs:       logs,
		dispatcher: dispatcher,
		oplog:      newOpLog(logs, entity.SourceLostFound, logger),
		metrics:    metrics,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *LostFoundService) numbers(ctx context.Context, category, manualFRN string, at time.Time) (string, string, error) {
	bags := category == entity.CategoryBags

	var item string
	if bags {
		n, err := s.items.NextSequence(ctx, seqBagItem)
		if err != nil {
			return "", "", fmt.Errorf("failed to number item: %w", err)
		}
		item = fmt.Sprintf("BK%05dXXX", n)
	} else {
		year := at.Year()
		n, err := s.items.NextSequence(ctx, fmt.Sprintf("%s%d", seqItemYear, year))
		if err != nil {
			return "", "", fmt.Errorf("failed to number item: %w", err)
		}
		item = fmt.Sprintf("LF-%d-%04d", year, n)
	}

	frn := strings.ToUpper(strings.TrimSpace(manualFRN))
	if frn != "" {
		return item, frn, nil
	}
	frn, err := s.newFileReference(ctx, bags)
	return item, frn, err
}

func (s *LostFoundService) newFileReference(ctx context.Context, bags bool) (string, error) {
	if bags {
		n, err := s.items.NextSequence(ctx, seqBagFile)
		if err != nil {
			return "", fmt.Errorf("failed to number file: %w", err)
		}
		return fmt.Sprintf("AHL%05d", n), nil
	}
	n, err := s.items.NextSequence(ctx, seqFile)
	if err != nil {
		return "", fmt.Errorf("failed to number file: %w", err)
	}
	return fmt.Sprintf("FRN%05d", n), nil
}

// annotate attaches a baggage identification to an item, appending its
// bracketed annotation to the description and notes.
func annotate(item *entity.LostItem, baggage *entity.BaggageIdentification) error {
	if baggage == nil || baggage.IsEmpty() {
		return nil
	}
	normalized, err := baggage.Normalize()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	annotation := normalized.Annotation()
	if strings.TrimSpace(item.Description) == "" {
		item.Description = normalized.Describe()
	}
	item.Description = strings.TrimSpace(item.Description + " " + annotation)
	item.Notes = strings.TrimSpace(item.Notes + " " + annotation)
	item.Baggage = &normalized
	return nil
}

func setPhone(item *entity.LostItem, phone string) {
	item.ContactPhone = utils.NormalizePhone(phone)
	item.PhoneValidated = item.ContactPhone != "" && utils.IsValidPhone(item.ContactPhone)
}

func contactEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email != "" && !utils.IsValidEmail(email) {
		return "", fmt.Errorf("%w: invalid contact email", ErrValidation)
	}
	return email, nil
}

// AddItem registers a found (or lost) item
func (s *LostFoundService) AddItem(ctx context.Context, in NewItemInput) (*entity.LostItem, error) {
	item, err := s.buildItem(in, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.register(ctx, item, in.FileReference); err != nil {
		return nil, err
	}
	return item, nil
}

// buildItem validates the form and assembles an unnumbered item
func (s *LostFoundService) buildItem(in NewItemInput, now time.Time) (*entity.LostItem, error) {
	if strings.TrimSpace(in.Category) == "" {
		return nil, fmt.Errorf("%w: category is required", ErrValidation)
	}
	if strings.TrimSpace(in.Description) == "" && (in.Baggage == nil || in.Baggage.IsEmpty()) {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}

	status := in.Status
	if status == "" {
		status = entity.ItemFound
	}
	if status != entity.ItemFound && status != entity.ItemLost {
		return nil, fmt.Errorf("%w: new items are FOUND or LOST", ErrValidation)
	}

	email, err := contactEmail(in.ContactEmail)
	if err != nil {
		return nil, err
	}

	foundAt := in.FoundAt
	if foundAt.IsZero() {
		foundAt = now
	}

	item := &entity.LostItem{
		ID:              uuid.NewString(),
		Category:        strings.TrimSpace(in.Category),
		Description:     strings.TrimSpace(in.Description),
		Notes:           strings.TrimSpace(in.Notes),
		LocationFound:   in.LocationFound,
		FoundAt:         foundAt,
		FoundBy:         in.FoundBy,
		Status:          status,
		FlightNumber:    strings.ToUpper(strings.TrimSpace(in.FlightNumber)),
		StorageLocation: in.StorageLocation,
		PassengerName:   in.PassengerName,
		ContactEmail:    email,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	setPhone(item, in.ContactPhone)
	if err := annotate(item, in.Baggage); err != nil {
		return nil, err
	}
	return item, nil
}

// register numbers a built item and stores it
func (s *LostFoundService) register(ctx context.Context, item *entity.LostItem, manualFRN string) error {
	itemNumber, frn, err := s.numbers(ctx, item.Category, manualFRN, item.CreatedAt)
	if err != nil {
		return err
	}
	item.ItemNumber = itemNumber
	item.FileReference = frn

	if err := s.items.Create(ctx, item); err != nil {
		s.metrics.Error("lost_item_create")
		return fmt.Errorf("failed to create item: %w", err)
	}

	s.metrics.LostItemAction("create")
	s.oplog.info(ctx, forItem(item.ID), "ITEM %s REGISTERED AS %s IN FILE %s", item.ItemNumber, item.Status, item.FileReference)
	s.logger.Info("Lost item registered", "itemNumber", item.ItemNumber, "frn", item.FileReference, "status", item.Status)
	return nil
}

// ReportLostBaggage files one LOST bag item per described bag under a
// single file reference. Every bag is validated before anything is
// numbered or stored.
func (s *LostFoundService) ReportLostBaggage(ctx context.Context, report LostBaggageReport) ([]entity.LostItem, error) {
	if strings.TrimSpace(report.PassengerName) == "" {
		return nil, fmt.Errorf("%w: passenger name is required", ErrValidation)
	}
	if len(report.Bags) == 0 {
		return nil, fmt.Errorf("%w: at least one bag is required", ErrValidation)
	}

	now := s.now()
	built := make([]*entity.LostItem, 0, len(report.Bags))
	for i, bag := range report.Bags {
		baggage := bag.Baggage
		item, err := s.buildItem(NewItemInput{
			Category:      entity.CategoryBags,
			Description:   bag.Description,
			FoundBy:       report.ReportedBy,
			Status:        entity.ItemLost,
			FlightNumber:  report.FlightNumber,
			PassengerName: report.PassengerName,
			ContactPhone:  report.ContactPhone,
			ContactEmail:  report.ContactEmail,
			Baggage:       &baggage,
		}, now)
		if err != nil {
			return nil, fmt.Errorf("bag %d: %w", i+1, err)
		}
		if report.Address != nil {
			address := *report.Address
			item.Address = &address
		}
		built = append(built, item)
	}

	frn := strings.ToUpper(strings.TrimSpace(report.FileReference))
	if frn == "" {
		var err error
		if frn, err = s.newFileReference(ctx, true); err != nil {
			return nil, err
		}
	}

	items := make([]entity.LostItem, 0, len(built))
	for _, item := range built {
		if err := s.register(ctx, item, frn); err != nil {
			return items, err
		}
		items = append(items, *item)
	}

	s.oplog.info(ctx, entity.LogEntry{}, "LOST BAGGAGE REPORT %s FILED FOR %s: %d BAGS", frn, report.PassengerName, len(items))
	return items, nil
}

// Get returns one item
func (s *LostFoundService) Get(ctx context.Context, id string) (*entity.LostItem, error) {
	return s.items.FindByID(ctx, id)
}

// List returns items matching the filter
func (s *LostFoundService) List(ctx context.Context, filter entity.LostItemFilter) ([]entity.LostItem, error) {
	return s.items.List(ctx, filter)
}

// Update changes descriptive fields. Status is not writable here.
func (s *LostFoundService) Update(ctx context.Context, id string, update ItemUpdate) (*entity.LostItem, error) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.Status == entity.ItemClosed {
		return nil, fmt.Errorf("%w: item %s is closed", entity.ErrInvalidTransition, item.ItemNumber)
	}
	if update.ContactEmail != nil {
		email, err := contactEmail(*update.ContactEmail)
		if err != nil {
			return nil, err
		}
		update.ContactEmail = &email
	}

	var changed []string
	set := func(field string, dst *string, src *string) {
		if src != nil && *dst != *src {
			*dst = *src
			changed = append(changed, field)
		}
	}
	set("DESCRIPTION", &item.Description, update.Description)
	set("NOTES", &item.Notes, update.Notes)
	set("LOCATION", &item.LocationFound, update.LocationFound)
	set("STORAGE", &item.StorageLocation, update.StorageLocation)
	set("FLIGHT", &item.FlightNumber, update.FlightNumber)
	set("PASSENGER", &item.PassengerName, update.PassengerName)
	set("EMAIL", &item.ContactEmail, update.ContactEmail)
	if update.ContactPhone != nil {
		before := item.ContactPhone
		setPhone(item, *update.ContactPhone)
		if before != item.ContactPhone {
			changed = append(changed, "PHONE")
		}
	}

	if len(changed) == 0 {
		return item, nil
	}

	item.UpdatedAt = s.now()
	if err := s.items.Update(ctx, item, item.Status); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	s.metrics.LostItemAction("update")
	s.oplog.info(ctx, forItem(item.ID), "ITEM %s UPDATED: %s", item.ItemNumber, strings.Join(changed, ", "))
	return item, nil
}

func (s *LostFoundService) transition(ctx context.Context, id string, next entity.LostItemStatus, apply func(*entity.LostItem)) (*entity.LostItem, error) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !item.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s to %s", entity.ErrInvalidTransition, item.Status, next)
	}

	previous := item.Status
	item.Status = next
	if apply != nil {
		apply(item)
	}
	item.UpdatedAt = s.now()
	if err := s.items.Update(ctx, item, previous); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}
	s.metrics.LostItemAction(strings.ToLower(string(next)))
	return item, nil
}

// Claim hands an item over to its owner
func (s *LostFoundService) Claim(ctx context.Context, id string, in ClaimInput) (*entity.LostItem, error) {
	name := strings.TrimSpace(in.ClaimantName)
	if name == "" {
		return nil, fmt.Errorf("%w: claimant name is required", ErrValidation)
	}
	if len(in.Phones) > 2 {
		return nil, fmt.Errorf("%w: at most two phone numbers", ErrValidation)
	}

	phones := make([]string, 0, len(in.Phones))
	for _, phone := range in.Phones {
		if normalized := utils.NormalizePhone(phone); normalized != "" {
			phones = append(phones, normalized)
		}
	}

	claimedAt := s.now()
	item, err := s.transition(ctx, id, entity.ItemClaimed, func(item *entity.LostItem) {
		item.ClaimantName = name
		item.ClaimantPhones = phones
		item.ClaimedAt = &claimedAt
		if in.Address != nil {
			address := *in.Address
			item.Address = &address
		}
	})
	if err != nil {
		return nil, err
	}

	s.oplog.info(ctx, forItem(item.ID), "ITEM %s CLAIMED BY %s", item.ItemNumber, name)
	return item, nil
}

// Suspend puts an item on hold
func (s *LostFoundService) Suspend(ctx context.Context, id string) (*entity.LostItem, error) {
	item, err := s.transition(ctx, id, entity.ItemSuspended, nil)
	if err != nil {
		return nil, err
	}
	s.oplog.info(ctx, forItem(item.ID), "ITEM %s SUSPENDED", item.ItemNumber)
	return item, nil
}

// Archive retires an item
func (s *LostFoundService) Archive(ctx context.Context, id string) (*entity.LostItem, error) {
	item, err := s.transition(ctx, id, entity.ItemArchived, nil)
	if err != nil {
		return nil, err
	}
	s.oplog.info(ctx, forItem(item.ID), "ITEM %s ARCHIVED", item.ItemNumber)
	return item, nil
}

// CloseFile closes every item of a file reference group
func (s *LostFoundService) CloseFile(ctx context.Context, frn string) ([]entity.LostItem, error) {
	frn = strings.ToUpper(strings.TrimSpace(frn))
	items, err := s.items.FindByFRN(ctx, frn)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("file %s: %w", frn, repository.ErrNotFound)
	}

	closed := make([]entity.LostItem, 0, len(items))
	for i := range items {
		item, err := s.closeItem(ctx, &items[i])
		if err != nil {
			return closed, fmt.Errorf("failed to close item %s: %w", items[i].ItemNumber, err)
		}
		if item == nil {
			continue
		}
		s.oplog.info(ctx, forItem(item.ID), "ITEM %s CLOSED WITH FILE %s", item.ItemNumber, frn)
		closed = append(closed, *item)
	}

	s.metrics.LostItemAction("close_file")
	s.logger.Info("File closed", "frn", frn, "items", len(closed))
	return closed, nil
}

// closeItem closes one item, re-reading it when a concurrent change wins
// the race. It returns nil when the item is already closed.
func (s *LostFoundService) closeItem(ctx context.Context, item *entity.LostItem) (*entity.LostItem, error) {
	for attempt := 0; ; attempt++ {
		if item.Status == entity.ItemClosed {
			return nil, nil
		}

		previous := item.Status
		item.Status = entity.ItemClosed
		item.UpdatedAt = s.now()
		err := s.items.Update(ctx, item, previous)
		if err == nil {
			return item, nil
		}
		if !errors.Is(err, entity.ErrInvalidTransition) || attempt == closeRetries {
			return nil, err
		}

		if item, err = s.items.FindByID(ctx, item.ID); err != nil {
			return nil, err
		}
	}
}

// AuditTrail returns an item's log entries, oldest first
func (s *LostFoundService) AuditTrail(ctx context.Context, id string) ([]entity.LogEntry, error) {
	if _, err := s.items.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.logs.FindByItemID(ctx, id)
}

// SendStatusUpdate emails the item's current status and waits for the outcome
func (s *LostFoundService) SendStatusUpdate(ctx context.Context, id, to string) (entity.SendResult, error) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return entity.SendResult{}, err
	}

	to = strings.TrimSpace(to)
	if to == "" {
		to = item.ContactEmail
	}
	if !utils.IsValidEmail(to) {
		return entity.SendResult{}, fmt.Errorf("%w: a valid recipient email is required", ErrValidation)
	}

	data := templates.StatusUpdate{
		ItemNumber:    item.ItemNumber,
		FileReference: item.FileReference,
		Category:      item.Category,
		Description:   item.Description,
		Status:        string(item.Status),
		FlightNumber:  item.FlightNumber,
		Storage:       item.StorageLocation,
		ClaimantName:  item.ClaimantName,
	}
	if item.Address != nil {
		data.Address = &templates.Address{
			Street:     item.Address.Street,
			City:       item.Address.City,
			PostalCode: item.Address.PostalCode,
			Country:    item.Address.Country,
		}
	}

	job := EmailJob{Kind: entity.EmailStatusUpdate, ItemID: item.ID, Email: toOutgoing(to, templates.RenderStatusUpdate(data))}
	return s.dispatcher.Dispatch(ctx, job, nil).Wait(ctx)
}
