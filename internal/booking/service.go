package booking

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"greentasty-reservation-services/internal/clock"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ClientType string

// Actor is the authenticated identity an operation acts as; mutations are
// authorized against it explicitly instead of any ambient request state.
type Actor struct {
	Email string
	Role  string
}

func (a Actor) mayManage(r *Reservation) bool {
	switch a.Role {
	case "ADMIN":
		return true
	case "WAITER":
		return r.WaiterEmail == a.Email
	default:
		return r.CustomerEmail == a.Email
	}
}

const (
	ClientCustomer ClientType = "CUSTOMER"
	ClientVisitor  ClientType = "VISITOR"
)

// Service is the booking orchestrator: it validates requests, allocates
// table slots, assigns waiters and persists the reservation aggregate.
type Service struct {
	Reservations ReservationStore
	Tables       TableStore
	Waiters      WaiterStore
	Locations    LocationDirectory
	Clock        clock.Clock
	Logger       *zap.Logger

	// NewID overrides reservation id generation in tests.
	NewID func() string
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

type ClientBookingRequest struct {
	LocationID    string
	TableIDs      []string
	Date          string
	TimeFrom      string
	TimeTo        string
	GuestsNumber  int
	CustomerEmail string
}

type WaiterBookingRequest struct {
	ClientType    ClientType
	LocationID    string
	TableIDs      []string
	Date          string
	TimeFrom      string
	TimeTo        string
	GuestsNumber  int
	CustomerName  string
	CustomerEmail string
	WaiterEmail   string
}

type EditRequest struct {
	GuestsNumber int
	TimeFrom     string
	TimeTo       string
}

// Confirmation is what a successful booking reports back to the caller.
type Confirmation struct {
	Reservation     *Reservation
	LocationAddress string
	UserInfo        string
}

// CreateClientBooking books tables for a self-service customer. The waiter
// is always the computed least-busy one.
func (s *Service) CreateClientBooking(ctx context.Context, req ClientBookingRequest) (*Confirmation, error) {
	if strings.TrimSpace(req.LocationID) == "" {
		return nil, Validation("locationId is required")
	}
	if req.GuestsNumber <= 0 {
		return nil, Validation("guests number must be at least 1")
	}
	if len(req.TableIDs) == 0 {
		return nil, Validation("select at least one table")
	}
	slot := MakeSlot(req.TimeFrom, req.TimeTo)
	if !slot.Valid() {
		return nil, Validation("start and end time of the booking are required")
	}

	zone, err := s.Locations.ZoneOf(ctx, req.LocationID)
	if err != nil {
		return nil, err
	}
	now := s.Clock.Now(zone)
	if err := ValidateBookingTime(req.Date, slot, now); err != nil {
		return nil, err
	}

	if err := s.Tables.Reserve(ctx, req.LocationID, req.Date, slot, req.TableIDs); err != nil {
		return nil, err
	}

	waiterEmail, err := s.assignWaiter(ctx, req.LocationID, req.Date, now)
	if err != nil {
		s.compensateFree(ctx, req.LocationID, req.Date, slot, req.TableIDs)
		return nil, err
	}

	r := &Reservation{
		ID:            s.newID(),
		TableIDs:      req.TableIDs,
		LocationID:    req.LocationID,
		Status:        StatusReserved,
		Date:          req.Date,
		TimeSlot:      slot,
		GuestsNumber:  req.GuestsNumber,
		PreOrder:      map[string]int{},
		CustomerEmail: req.CustomerEmail,
		WaiterEmail:   waiterEmail,
	}
	if err := s.Reservations.Create(ctx, r); err != nil {
		s.compensateFree(ctx, req.LocationID, req.Date, slot, req.TableIDs)
		return nil, err
	}

	weekday, err := r.WeekdayIndex()
	if err != nil {
		return nil, Validation("invalid reservation date")
	}
	if err := s.Waiters.AdjustCustomerCount(ctx, waiterEmail, weekday, 1); err != nil {
		s.Logger.Warn("waiter load increment failed",
			zap.String("waiter", waiterEmail), zap.String("reservation", r.ID), zap.Error(err))
	}

	address, err := s.Locations.AddressOf(ctx, req.LocationID)
	if err != nil {
		address = ""
	}
	return &Confirmation{Reservation: r, LocationAddress: address}, nil
}

// CreateWaiterBooking books on behalf of a named customer or an anonymous
// walk-in visitor. The acting waiter keeps the reservation, the computed
// assignment is bypassed.
func (s *Service) CreateWaiterBooking(ctx context.Context, req WaiterBookingRequest) (*Confirmation, error) {
	if strings.TrimSpace(req.LocationID) == "" || req.Date == "" || req.GuestsNumber <= 0 || len(req.TableIDs) == 0 {
		return nil, Validation("missing required fields")
	}
	slot := MakeSlot(req.TimeFrom, req.TimeTo)
	if !slot.Valid() {
		return nil, Validation("start and end time of the booking are required")
	}
	if req.ClientType != ClientCustomer && req.ClientType != ClientVisitor {
		return nil, Conflict(ErrClientTypeUnknown, "client type must be CUSTOMER or VISITOR")
	}
	if req.ClientType == ClientCustomer &&
		(strings.TrimSpace(req.CustomerName) == "" || strings.TrimSpace(req.CustomerEmail) == "") {
		return nil, Validation("customer name and email are required")
	}

	waiter, err := s.Waiters.Load(ctx, req.WaiterEmail)
	if err != nil {
		return nil, err
	}
	if waiter.LocationID != req.LocationID {
		return nil, Unauthorized("waiter is not authorized to book for this location")
	}

	zone, err := s.Locations.ZoneOf(ctx, req.LocationID)
	if err != nil {
		return nil, err
	}
	now := s.Clock.Now(zone)
	if err := ValidateBookingTime(req.Date, slot, now); err != nil {
		return nil, err
	}

	if err := s.Tables.Reserve(ctx, req.LocationID, req.Date, slot, req.TableIDs); err != nil {
		return nil, err
	}

	r := &Reservation{
		ID:           s.newID(),
		TableIDs:     req.TableIDs,
		LocationID:   req.LocationID,
		Status:       StatusReserved,
		Date:         req.Date,
		TimeSlot:     slot,
		GuestsNumber: req.GuestsNumber,
		PreOrder:     map[string]int{},
		WaiterEmail:  req.WaiterEmail,
	}

	var userInfo string
	weekday, err := r.WeekdayIndex()
	if err != nil {
		s.compensateFree(ctx, req.LocationID, req.Date, slot, req.TableIDs)
		return nil, Validation("invalid reservation date")
	}

	switch req.ClientType {
	case ClientCustomer:
		r.CustomerEmail = req.CustomerEmail
		if err := s.Waiters.AdjustCustomerCount(ctx, req.WaiterEmail, weekday, 1); err != nil {
			s.compensateFree(ctx, req.LocationID, req.Date, slot, req.TableIDs)
			return nil, err
		}
		userInfo = "Customer " + req.CustomerName
	case ClientVisitor:
		ordinal, err := s.Waiters.AdjustVisitorCount(ctx, req.WaiterEmail, 1)
		if err != nil {
			s.compensateFree(ctx, req.LocationID, req.Date, slot, req.TableIDs)
			return nil, err
		}
		r.VisitorID = strconv.Itoa(ordinal)
		userInfo = "Visitor " + r.VisitorID
	}

	if err := s.Reservations.Create(ctx, r); err != nil {
		s.compensateFree(ctx, req.LocationID, req.Date, slot, req.TableIDs)
		return nil, err
	}

	address, err := s.Locations.AddressOf(ctx, req.LocationID)
	if err != nil {
		address = ""
	}
	return &Confirmation{Reservation: r, LocationAddress: address, UserInfo: userInfo}, nil
}

// Edit changes guest count and/or slot. A guest-count change onto the
// paired adjacent count for the held table keeps the table; anything else
// runs a full re-allocation.
func (s *Service) Edit(ctx context.Context, reservationID string, actor Actor, req EditRequest) (*Reservation, string, error) {
	if req.GuestsNumber <= 0 {
		return nil, "", Validation("guests number must be at least 1")
	}
	requested := MakeSlot(req.TimeFrom, req.TimeTo)
	if !requested.Valid() {
		return nil, "", Validation("start and end time of the booking are required")
	}

	r, err := s.Reservations.Get(ctx, reservationID)
	if err != nil {
		return nil, "", err
	}
	if !actor.mayManage(r) {
		return nil, "", Unauthorized("you cannot modify this reservation")
	}
	if r.Status != StatusReserved {
		return nil, "", Conflict(ErrAlreadyCancelledOrFinished,
			"Reservation "+reservationID+" can no longer be modified")
	}

	zone, err := s.Locations.ZoneOf(ctx, r.LocationID)
	if err != nil {
		return nil, "", err
	}
	now := s.Clock.Now(zone)
	if err := ValidateModificationTime(r.Date, r.TimeSlot, now); err != nil {
		return nil, "", err
	}
	if err := ValidateBookingTime(r.Date, r.TimeSlot, now); err != nil {
		return nil, "", err
	}

	if requested == r.TimeSlot && req.GuestsNumber == r.GuestsNumber {
		return r, "No changes were made to the reservation.", nil
	}

	if requested == r.TimeSlot && pairedGuestCount(r.GuestsNumber, req.GuestsNumber) {
		r.GuestsNumber = req.GuestsNumber
		if err := s.Reservations.Update(ctx, r, StatusReserved); err != nil {
			return nil, "", err
		}
		return r, "Reservation edited successfully", nil
	}

	candidate, err := s.firstCandidateTable(ctx, r.LocationID, r.Date, requested, req.GuestsNumber, now)
	if err != nil {
		return nil, "", err
	}

	if err := s.Tables.Reserve(ctx, r.LocationID, r.Date, requested, []string{candidate}); err != nil {
		return nil, "", err
	}

	previousTables := r.TableIDs
	previousSlot := r.TimeSlot
	r.TableIDs = []string{candidate}
	r.TimeSlot = requested
	r.GuestsNumber = req.GuestsNumber
	if err := s.Reservations.Update(ctx, r, StatusReserved); err != nil {
		s.compensateFree(ctx, r.LocationID, r.Date, requested, []string{candidate})
		return nil, "", err
	}

	if err := s.Tables.Free(ctx, r.LocationID, r.Date, previousSlot, previousTables); err != nil {
		s.Logger.Warn("freeing previously held tables failed",
			zap.String("reservation", r.ID), zap.Strings("tables", previousTables), zap.Error(err))
	}
	return r, "Reservation edited successfully", nil
}

// Cancel transitions a reservation into CANCELLED, frees its table slots
// and releases the waiter's load.
func (s *Service) Cancel(ctx context.Context, reservationID string, actor Actor) error {
	r, err := s.Reservations.Get(ctx, reservationID)
	if err != nil {
		return err
	}
	if !actor.mayManage(r) {
		return Unauthorized("you cannot cancel this reservation")
	}
	if !r.Status.CanCancel() {
		return Conflict(ErrAlreadyCancelledOrFinished,
			"Reservation "+reservationID+" is already cancelled or finished")
	}

	zone, err := s.Locations.ZoneOf(ctx, r.LocationID)
	if err != nil {
		return err
	}
	now := s.Clock.Now(zone)
	if err := ValidateModificationTime(r.Date, r.TimeSlot, now); err != nil {
		return err
	}

	if err := s.Reservations.UpdateStatus(ctx, r.ID, r.Status, StatusCancelled); err != nil {
		return err
	}
	if err := s.Tables.Free(ctx, r.LocationID, r.Date, r.TimeSlot, r.TableIDs); err != nil {
		s.Logger.Warn("freeing cancelled reservation tables failed",
			zap.String("reservation", r.ID), zap.Error(err))
	}
	return s.ReleaseWaiterLoad(ctx, r)
}

// ReleaseWaiterLoad decrements the counter a reservation occupied: the
// weekday customer counter, or the walk-in visitor counter.
func (s *Service) ReleaseWaiterLoad(ctx context.Context, r *Reservation) error {
	if r.WalkIn() {
		_, err := s.Waiters.AdjustVisitorCount(ctx, r.WaiterEmail, -1)
		return err
	}
	weekday, err := r.WeekdayIndex()
	if err != nil {
		return err
	}
	return s.Waiters.AdjustCustomerCount(ctx, r.WaiterEmail, weekday, -1)
}

// AvailableTables scans the ledger for tables with matching free slots,
// ordered by table id and slot.
func (s *Service) AvailableTables(ctx context.Context, locationID, date, requestedTime string, guests int) ([]AvailableTable, error) {
	zone, err := s.Locations.ZoneOf(ctx, locationID)
	if err != nil {
		return nil, err
	}
	now := s.Clock.Now(zone)

	records, err := s.Tables.ByLocationDate(ctx, locationID, date, guests)
	if err != nil {
		return nil, err
	}

	result := make([]AvailableTable, 0, len(records))
	for _, record := range records {
		slots := record.MatchSlots(requestedTime, now)
		if len(slots) == 0 {
			continue
		}
		result = append(result, AvailableTable{
			TableID:    record.TableID,
			LocationID: record.LocationID,
			Capacity:   record.Capacity,
			Date:       record.Date,
			Slots:      slots,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TableID < result[j].TableID })
	return result, nil
}

// Summary is a reservation enriched with its location address for listing.
type Summary struct {
	Reservation
	LocationAddress string `json:"locationAddress"`
}

func (s *Service) ListForCustomer(ctx context.Context, email string) ([]Summary, error) {
	reservations, err := s.Reservations.ListByCustomer(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, reservations), nil
}

func (s *Service) ListForCustomerByStatus(ctx context.Context, email string, status Status) ([]Summary, error) {
	reservations, err := s.Reservations.ListByCustomerAndStatus(ctx, email, status)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, reservations), nil
}

func (s *Service) ListForWaiter(ctx context.Context, email string, filter WaiterFilter) ([]Summary, error) {
	reservations, err := s.Reservations.ListByWaiter(ctx, email, filter)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, reservations), nil
}

func (s *Service) summarize(ctx context.Context, reservations []Reservation) []Summary {
	out := make([]Summary, 0, len(reservations))
	for _, r := range reservations {
		address, err := s.Locations.AddressOf(ctx, r.LocationID)
		if err != nil {
			address = ""
		}
		out = append(out, Summary{Reservation: r, LocationAddress: address})
	}
	return out
}

func (s *Service) assignWaiter(ctx context.Context, locationID, date string, now time.Time) (string, error) {
	waiters, err := s.Waiters.ByLocation(ctx, locationID)
	if err != nil {
		return "", err
	}
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", Validation("invalid reservation date")
	}
	sameDay := date == now.Format(DateLayout)
	best, ok := LeastBusyWaiter(waiters, WeekdayIndex(day), sameDay)
	if !ok {
		return "", Conflict(ErrNoWaiterAvailable, "no waiters available at this location")
	}
	return best.Email, nil
}

// firstCandidateTable finds the lowest-numbered table that can seat the
// party and still has the requested slot open.
func (s *Service) firstCandidateTable(ctx context.Context, locationID, date string, slot Slot, guests int, now time.Time) (string, error) {
	records, err := s.Tables.ByLocationDate(ctx, locationID, date, guests)
	if err != nil {
		return "", err
	}
	sort.Slice(records, func(i, j int) bool { return records[i].TableID < records[j].TableID })
	for _, record := range records {
		for _, matched := range record.MatchSlots(slot.From(), now) {
			if matched == slot {
				return record.TableID, nil
			}
		}
	}
	return "", Conflict(ErrTableNotAvailable, "No available tables match the updated reservation criteria")
}

func (s *Service) compensateFree(ctx context.Context, locationID, date string, slot Slot, tableIDs []string) {
	if err := s.Tables.Free(ctx, locationID, date, slot, tableIDs); err != nil {
		s.Logger.Error("compensating table free failed",
			zap.String("location", locationID), zap.Strings("tables", tableIDs), zap.Error(err))
	}
}

// pairedGuestCount reports whether requested is the adjacent count a table
// sized for reserved can still serve without reassignment: an even count
// pairs down by one, an odd count pairs up by one.
func pairedGuestCount(reserved, requested int) bool {
	if reserved%2 == 0 {
		return requested == reserved-1
	}
	return requested == reserved+1
}
