package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/gateway"

	"github.com/google/uuid"
)

// memStore is an in-memory stand-in for the booking, passenger, travel
// option, user and profile tables. Its confirm path mirrors the conditional
// updates of the SQL repository.
type memStore struct {
	mu         sync.Mutex
	options    map[uuid.UUID]*entity.TravelOption
	bookings   map[uuid.UUID]*entity.Booking
	passengers map[uuid.UUID][]*entity.Passenger
	users      map[uuid.UUID]*entity.User
	profiles   map[uuid.UUID]*entity.Profile
	failCreate error
}

func newMemStore() *memStore {
	return &memStore{
		options:    make(map[uuid.UUID]*entity.TravelOption),
		bookings:   make(map[uuid.UUID]*entity.Booking),
		passengers: make(map[uuid.UUID][]*entity.Passenger),
		users:      make(map[uuid.UUID]*entity.User),
		profiles:   make(map[uuid.UUID]*entity.Profile),
	}
}

func (m *memStore) repository() *repository.Repository {
	return &repository.Repository{
		User:         memUsers{m},
		Profile:      memProfiles{m},
		TravelOption: memOptions{m},
		Booking:      memBookings{m},
		Passenger:    memPassengers{m},
	}
}

func (m *memStore) addOption(travelID string, total int, price float64) *entity.TravelOption {
	m.mu.Lock()
	defer m.mu.Unlock()

	departure := time.Now().Add(72 * time.Hour)
	option := &entity.TravelOption{
		Base:           entity.Base{ID: uuid.New()},
		TravelID:       travelID,
		TravelType:     entity.TravelTypeFlight,
		Source:         "Mumbai",
		Destination:    "Goa",
		DepartureAt:    departure,
		ArrivalAt:      departure.Add(90 * time.Minute),
		PricePerSeat:   price,
		TotalSeats:     total,
		AvailableSeats: total,
		OperatorName:   "IndiGo",
		IsActive:       true,
	}
	m.options[option.ID] = option
	return option
}

func (m *memStore) addUser(username string) *entity.User {
	m.mu.Lock()
	defer m.mu.Unlock()

	user := &entity.User{
		Base:      entity.Base{ID: uuid.New()},
		Username:  username,
		Email:     username + "@example.com",
		FirstName: "Asha",
		LastName:  "Rao",
		Role:      entity.RoleCustomer,
		IsActive:  true,
	}
	m.users[user.ID] = user
	return user
}

func (m *memStore) option(id uuid.UUID) entity.TravelOption {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.options[id]
}

func (m *memStore) bookingByPublicID(bookingID string) *entity.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.BookingID == bookingID {
			copied := *b
			return &copied
		}
	}
	return nil
}

func (m *memStore) bookingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.bookings)
}

func (m *memStore) passengerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, ps := range m.passengers {
		n += len(ps)
	}
	return n
}

type memBookings struct{ m *memStore }

func (r memBookings) CreateWithPassengers(_ context.Context, b *entity.Booking, ps []*entity.Passenger) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failCreate != nil {
		return r.m.failCreate
	}
	if len(ps) != b.NumberOfSeats {
		return fmt.Errorf("passenger count mismatch")
	}
	copied := *b
	r.m.bookings[b.ID] = &copied
	for i, p := range ps {
		p.BookingID = b.ID
		p.Position = i + 1
		cp := *p
		r.m.passengers[b.ID] = append(r.m.passengers[b.ID], &cp)
	}
	return nil
}

func (r memBookings) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	b, ok := r.m.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (r memBookings) FindByBookingID(_ context.Context, bookingID string) (*entity.Booking, error) {
	return r.m.bookingByPublicID(bookingID), nil
}

func (r memBookings) FindByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*entity.Booking
	for _, b := range r.m.bookings {
		if b.UserID == userID {
			copied := *b
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	return out[offset:min(offset+limit, len(out))], nil
}

func (r memBookings) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	all, _ := r.FindByUserID(ctx, userID, 1<<30, 0)
	return int64(len(all)), nil
}

func (r memBookings) SetGatewayOrder(_ context.Context, id uuid.UUID, orderID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	b, ok := r.m.bookings[id]
	if !ok || b.Status != entity.BookingStatusPending {
		return repository.ErrNotFound
	}
	b.GatewayOrderID = orderID
	return nil
}

func (r memBookings) ConfirmPayment(_ context.Context, id uuid.UUID, paymentID string, paidAt time.Time) (*repository.SeatAllocation, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	b, ok := r.m.bookings[id]
	if !ok || b.Status != entity.BookingStatusPending || b.PaymentStatus == entity.PaymentStatusCompleted {
		return nil, nil
	}
	option := r.m.options[b.TravelOptionID]
	if option.AvailableSeats < b.NumberOfSeats {
		return nil, fmt.Errorf("travel option %s: %w", option.TravelID, repository.ErrSeatsUnavailable)
	}

	option.AvailableSeats -= b.NumberOfSeats
	offset := 0
	for bookingID, passengers := range r.m.passengers {
		if r.m.bookings[bookingID].TravelOptionID != option.ID {
			continue
		}
		for _, p := range passengers {
			var n int
			if _, err := fmt.Sscanf(p.SeatNumber, "S%d", &n); err == nil && n > offset {
				offset = n
			}
		}
	}
	for _, p := range r.m.passengers[id] {
		p.SeatNumber = fmt.Sprintf("S%d", offset+p.Position)
	}

	b.Status = entity.BookingStatusConfirmed
	b.PaymentStatus = entity.PaymentStatusCompleted
	b.PaymentMethod = entity.PaymentMethodGateway
	b.TransactionID = paymentID
	b.PaymentDate = &paidAt

	return &repository.SeatAllocation{
		TravelOptionID: option.ID,
		Seats:          b.NumberOfSeats,
		AvailableAfter: option.AvailableSeats,
	}, nil
}

func (r memBookings) MarkPaymentFailed(_ context.Context, id uuid.UUID) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	b, ok := r.m.bookings[id]
	if !ok || b.PaymentStatus == entity.PaymentStatusCompleted {
		return false, nil
	}
	b.PaymentStatus = entity.PaymentStatusFailed
	return true, nil
}

type memPassengers struct{ m *memStore }

func (r memPassengers) FindByBookingID(_ context.Context, bookingID uuid.UUID) ([]*entity.Passenger, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*entity.Passenger
	for _, p := range r.m.passengers[bookingID] {
		copied := *p
		out = append(out, &copied)
	}
	return out, nil
}

type memOptions struct{ m *memStore }

func (r memOptions) Create(_ context.Context, o *entity.TravelOption) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	copied := *o
	r.m.options[o.ID] = &copied
	return nil
}

func (r memOptions) Update(_ context.Context, o *entity.TravelOption, keepSold bool) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	current, ok := r.m.options[o.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if keepSold {
		sold := current.TotalSeats - current.AvailableSeats
		if sold > o.TotalSeats {
			return repository.ErrBelowSold
		}
		o.AvailableSeats = o.TotalSeats - sold
	}
	copied := *o
	r.m.options[o.ID] = &copied
	return nil
}

func (r memOptions) FindByID(_ context.Context, id uuid.UUID) (*entity.TravelOption, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	o, ok := r.m.options[id]
	if !ok {
		return nil, nil
	}
	copied := *o
	return &copied, nil
}

func (r memOptions) FindByTravelID(_ context.Context, travelID string) (*entity.TravelOption, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, o := range r.m.options {
		if o.TravelID == travelID {
			copied := *o
			return &copied, nil
		}
	}
	return nil, nil
}

func (r memOptions) FindAll(_ context.Context, limit, offset int) ([]*entity.TravelOption, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*entity.TravelOption
	for _, o := range r.m.options {
		copied := *o
		out = append(out, &copied)
	}
	if offset >= len(out) {
		return nil, nil
	}
	return out[offset:min(offset+limit, len(out))], nil
}

func (r memOptions) CountAll(_ context.Context) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return int64(len(r.m.options)), nil
}

func (r memOptions) FindByDestination(_ context.Context, destination string, _ repository.TravelOptionFilter) ([]*entity.TravelOption, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*entity.TravelOption
	for _, o := range r.m.options {
		if strings.EqualFold(o.Destination, destination) && o.IsActive {
			copied := *o
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r memOptions) ListDestinations(context.Context, int) ([]*entity.Destination, error) {
	return nil, nil
}

type memUsers struct{ m *memStore }

func (r memUsers) Create(_ context.Context, u *entity.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	copied := *u
	r.m.users[u.ID] = &copied
	return nil
}

func (r memUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r memUsers) FindByEmail(context.Context, string) (*entity.User, error)    { return nil, nil }
func (r memUsers) FindByUsername(context.Context, string) (*entity.User, error) { return nil, nil }
func (r memUsers) Update(context.Context, *entity.User) error                   { return nil }

type memProfiles struct{ m *memStore }

func (r memProfiles) Ensure(_ context.Context, userID uuid.UUID) (*entity.Profile, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.profiles[userID]
	if !ok {
		p = &entity.Profile{Base: entity.Base{ID: uuid.New()}, UserID: userID}
		r.m.profiles[userID] = p
	}
	copied := *p
	return &copied, nil
}

func (r memProfiles) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.Profile, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.profiles[userID]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (r memProfiles) Upsert(_ context.Context, p *entity.Profile) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	copied := *p
	r.m.profiles[p.UserID] = &copied
	return nil
}

// fakeGateway signs with a known secret and numbers its orders.
type fakeGateway struct {
	mu     sync.Mutex
	secret string
	orders int
	err    error
}

func (g *fakeGateway) KeyID() string { return "rzp_test_key" }

func (g *fakeGateway) CreateOrder(_ context.Context, amount int64, currency, receipt string) (*gateway.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return nil, g.err
	}
	g.orders++
	return &gateway.Order{
		ID:       fmt.Sprintf("order_%d", g.orders),
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
		Status:   "created",
	}, nil
}

func (g *fakeGateway) VerifySignature(orderID, paymentID, signature string) error {
	if gateway.Sign(g.secret, orderID, paymentID) != signature {
		return gateway.ErrSignatureInvalid
	}
	return nil
}

func (g *fakeGateway) orderCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.orders
}
