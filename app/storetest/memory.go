// Package storetest provides in-memory implementations of the service store
// interfaces for tests. Documents are copied on the way in and out so a test
// can assert the store is unchanged after a failed operation.
package storetest

import (
	"context"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/skirmish/app/models"
)

// Users is an in-memory services.UserStore.
type Users struct {
	mu   sync.RWMutex
	docs map[primitive.ObjectID]models.User
}

func NewUsers() *Users {
	return &Users{docs: make(map[primitive.ObjectID]models.User)}
}

func (s *Users) Insert(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	s.docs[u.ID] = *u
	return nil
}

func (s *Users) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.docs {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

func (s *Users) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.docs[id]; ok {
		out := u
		return &out, nil
	}
	return nil, nil
}

func (s *Users) UpdatePassword(_ context.Context, id primitive.ObjectID, hash string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.docs[id]
	if !ok {
		return nil, nil
	}
	u.Password = hash
	s.docs[id] = u
	out := u
	return &out, nil
}

// Remove drops a user, letting tests stage an account that vanished after
// its token was issued.
func (s *Users) Remove(id primitive.ObjectID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, id)
}

// Combatants is an in-memory services.CombatantStore.
type Combatants struct {
	mu   sync.RWMutex
	docs map[primitive.ObjectID]models.Combatant
}

func NewCombatants() *Combatants {
	return &Combatants{docs: make(map[primitive.ObjectID]models.Combatant)}
}

func (s *Combatants) Insert(_ context.Context, c *models.Combatant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	s.docs[c.ID] = *c
	return nil
}

func (s *Combatants) FindByID(_ context.Context, id primitive.ObjectID) (*models.Combatant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.docs[id]; ok {
		out := c
		return &out, nil
	}
	return nil, nil
}

func (s *Combatants) FindAll(_ context.Context) ([]models.Combatant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]models.Combatant, 0, len(s.docs))
	for _, c := range s.docs {
		all = append(all, c)
	}
	return all, nil
}

func (s *Combatants) Update(_ context.Context, c *models.Combatant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[c.ID] = *c
	return nil
}

func (s *Combatants) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, id)
	return nil
}

// Encounters is an in-memory services.EncounterStore.
type Encounters struct {
	mu   sync.RWMutex
	ids  []primitive.ObjectID // insertion order, so listings are stable
	docs map[primitive.ObjectID]models.Encounter
}

func NewEncounters() *Encounters {
	return &Encounters{docs: make(map[primitive.ObjectID]models.Encounter)}
}

func (s *Encounters) Insert(_ context.Context, e *models.Encounter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	s.ids = append(s.ids, e.ID)
	s.docs[e.ID] = copyEncounter(*e)
	return nil
}

func (s *Encounters) FindByID(_ context.Context, id primitive.ObjectID) (*models.Encounter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.docs[id]; ok {
		out := copyEncounter(e)
		return &out, nil
	}
	return nil, nil
}

func (s *Encounters) FindAll(_ context.Context) ([]models.Encounter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]models.Encounter, 0, len(s.ids))
	for _, id := range s.ids {
		if e, ok := s.docs[id]; ok {
			all = append(all, copyEncounter(e))
		}
	}
	return all, nil
}

func (s *Encounters) FindByOwner(_ context.Context, userID primitive.ObjectID) ([]models.Encounter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var own []models.Encounter
	for _, id := range s.ids {
		if e, ok := s.docs[id]; ok && e.UserID == userID {
			own = append(own, copyEncounter(e))
		}
	}
	return own, nil
}

func (s *Encounters) SearchByOwnerAndName(_ context.Context, userID primitive.ObjectID, name string) ([]models.Encounter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matches []models.Encounter
	for _, id := range s.ids {
		e, ok := s.docs[id]
		if !ok || e.UserID != userID {
			continue
		}
		if strings.Contains(strings.ToLower(e.Name), strings.ToLower(name)) {
			matches = append(matches, copyEncounter(e))
		}
	}
	return matches, nil
}

func (s *Encounters) Update(_ context.Context, e *models.Encounter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[e.ID] = copyEncounter(*e)
	return nil
}

func (s *Encounters) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, id)
	return nil
}

func (s *Encounters) CountReferencing(_ context.Context, combatantID primitive.ObjectID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, e := range s.docs {
		for _, c := range e.Combatants {
			if c.ID == combatantID {
				n++
				break
			}
		}
	}
	return n, nil
}

// Len reports the number of stored encounters.
func (s *Encounters) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

func copyEncounter(e models.Encounter) models.Encounter {
	out := e
	out.Combatants = append([]models.Combatant(nil), e.Combatants...)
	return out
}

// Items is an in-memory services.ItemStore.
type Items struct {
	mu   sync.RWMutex
	docs map[primitive.ObjectID]models.Item
}

func NewItems() *Items {
	return &Items{docs: make(map[primitive.ObjectID]models.Item)}
}

func (s *Items) Insert(_ context.Context, i *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i.ID.IsZero() {
		i.ID = primitive.NewObjectID()
	}
	s.docs[i.ID] = *i
	return nil
}

func (s *Items) FindByID(_ context.Context, id primitive.ObjectID) (*models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i, ok := s.docs[id]; ok {
		out := i
		return &out, nil
	}
	return nil, nil
}

func (s *Items) FindAll(_ context.Context) ([]models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]models.Item, 0, len(s.docs))
	for _, i := range s.docs {
		all = append(all, i)
	}
	return all, nil
}

func (s *Items) Update(_ context.Context, i *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[i.ID] = *i
	return nil
}

func (s *Items) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, id)
	return nil
}

// Orders is an in-memory services.OrderStore.
type Orders struct {
	mu   sync.RWMutex
	ids  []primitive.ObjectID
	docs map[primitive.ObjectID]models.Order
}

func NewOrders() *Orders {
	return &Orders{docs: make(map[primitive.ObjectID]models.Order)}
}

func (s *Orders) Insert(_ context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	s.ids = append(s.ids, o.ID)
	s.docs[o.ID] = copyOrder(*o)
	return nil
}

func (s *Orders) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if o, ok := s.docs[id]; ok {
		out := copyOrder(o)
		return &out, nil
	}
	return nil, nil
}

func (s *Orders) FindAll(_ context.Context) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]models.Order, 0, len(s.ids))
	for _, id := range s.ids {
		if o, ok := s.docs[id]; ok {
			all = append(all, copyOrder(o))
		}
	}
	return all, nil
}

func (s *Orders) FindByOwner(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var own []models.Order
	for _, id := range s.ids {
		if o, ok := s.docs[id]; ok && o.UserID == userID {
			own = append(own, copyOrder(o))
		}
	}
	return own, nil
}

func (s *Orders) Update(_ context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[o.ID] = copyOrder(*o)
	return nil
}

func copyOrder(o models.Order) models.Order {
	out := o
	out.Items = append([]models.Item(nil), o.Items...)
	return out
}
