package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/weijenchou/dogdietlinebot/internal/domain/nutrition"
	"github.com/weijenchou/dogdietlinebot/internal/domain/pets"
	"github.com/weijenchou/dogdietlinebot/internal/platform/logger"
	"github.com/weijenchou/dogdietlinebot/internal/platform/ownerlock"
	"github.com/weijenchou/dogdietlinebot/internal/ports/breeds"
	"github.com/weijenchou/dogdietlinebot/internal/ports/places"
	"github.com/weijenchou/dogdietlinebot/internal/ports/vision"
)

// DefaultPackageWeightGrams es el peso de paquete al que se refieren las calorías de la etiqueta.
const DefaultPackageWeightGrams = 1000

var ErrNoProfiles = errors.New("conversation: profile store is required")

// ProfileStore es lo que la máquina necesita del store de perfiles (pets.Service lo cumple).
type ProfileStore interface {
	Validate(ctx context.Context, in pets.CreateInput) (pets.CreateInput, error)
	Create(ctx context.Context, ownerUserID string, in pets.CreateInput) (pets.Pet, error)
	Get(ctx context.Context, ownerUserID, name string) (pets.Pet, error)
	List(ctx context.Context, ownerUserID string) ([]pets.Pet, error)
	RecordIntake(ctx context.Context, ownerUserID, name string, calories, waterML int) (pets.DailyRecord, error)
	TodayRecord(ctx context.Context, ownerUserID, name string) (pets.DailyRecord, error)
	Now() time.Time
}

// Deps agrupa colaboradores. Los adapters son opcionales: nil responde con fallo genérico.
type Deps struct {
	Profiles ProfileStore
	Sessions SessionStore      // default: NewMemoryStore(0)
	Locks    *ownerlock.Locker // default: ownerlock.New()

	Breeds breeds.Lookup
	Labels vision.LabelExtractor
	Foods  vision.FoodIdentifier
	Places places.Lookup

	Log                logger.Logger
	PackageWeightGrams float64
}

type Machine struct {
	profiles ProfileStore
	sessions SessionStore
	locks    *ownerlock.Locker

	breeds breeds.Lookup
	labels vision.LabelExtractor
	foods  vision.FoodIdentifier
	places places.Lookup

	log          logger.Logger
	packageGrams float64
}

func NewMachine(d Deps) (*Machine, error) {
	if d.Profiles == nil {
		return nil, ErrNoProfiles
	}
	m := &Machine{
		profiles:     d.Profiles,
		sessions:     d.Sessions,
		locks:        d.Locks,
		breeds:       d.Breeds,
		labels:       d.Labels,
		foods:        d.Foods,
		places:       d.Places,
		log:          d.Log,
		packageGrams: d.PackageWeightGrams,
	}
	if m.sessions == nil {
		m.sessions = NewMemoryStore(0)
	}
	if m.locks == nil {
		m.locks = ownerlock.New()
	}
	if m.log == nil {
		m.log = logger.Nop()
	}
	if m.packageGrams <= 0 {
		m.packageGrams = DefaultPackageWeightGrams
	}
	return m, nil
}

// Sessions expone el store (janitor).
func (m *Machine) Sessions() SessionStore { return m.sessions }

// outcome es el resultado de un paso: respuesta, siguiente paso (nil = idle) y error tipado.
type outcome struct {
	reply Reply
	next  Step
	err   *TurnError
}

func done(r Reply) outcome            { return outcome{reply: r} }
func stay(r Reply, next Step) outcome { return outcome{reply: r, next: next} }
func failed(kind Kind, r Reply, next Step, err error) outcome {
	return outcome{reply: r, next: next, err: &TurnError{Kind: kind, Msg: r.Text, Err: err}}
}

// adapterFailed limpia la sesión para no dejar el flujo trabado.
func adapterFailed(msg string, err error) outcome {
	return failed(KindAdapter, text(msg), nil, err)
}

// Handle procesa un turno completo bajo el lock del owner: leer sesión,
// ejecutar el paso (incluidas escrituras al store) y guardar el siguiente paso.
func (m *Machine) Handle(ctx context.Context, t Turn) Reply {
	owner := strings.TrimSpace(t.OwnerID)
	if owner == "" {
		return text(msgNoOwner)
	}

	unlock := m.locks.Lock(owner)
	defer unlock()

	current, _ := m.sessions.Get(owner)
	out := m.dispatch(ctx, owner, current, t)
	if out.next == nil {
		m.sessions.Delete(owner)
	} else {
		m.sessions.Put(owner, out.next)
	}

	m.logTurn(owner, t, current, out)
	return out.reply
}

func (m *Machine) logTurn(owner string, t Turn, current Step, out outcome) {
	fields := map[string]any{
		"owner_id":  owner,
		"turn_kind": string(t.Kind),
		"step":      stepName(current),
		"next_step": stepName(out.next),
	}
	if out.err == nil {
		m.log.Info("turn", fields)
		return
	}
	fields["error_kind"] = out.err.Kind.String()
	if out.err.Kind == KindAdapter {
		fields["error"] = out.err.Err
		m.log.Error("turn failed", fields)
		return
	}
	m.log.Info("turn", fields)
}

func isCancel(t Turn) bool {
	return t.Kind == TurnText && strings.EqualFold(strings.TrimSpace(t.Text), CancelKeyword)
}

func (m *Machine) dispatch(ctx context.Context, owner string, current Step, t Turn) outcome {
	// "exit" gana sobre cualquier paso.
	if isCancel(t) {
		return done(welcomeReply())
	}

	switch s := current.(type) {
	case nil:
		return m.idle(ctx, owner, t)
	case AwaitingPetInfo:
		return m.onPetInfo(ctx, owner, t)
	case AwaitingSaveConfirmation:
		return m.onSaveConfirmation(ctx, owner, s, t)
	case AwaitingDogName:
		return m.onDogName(ctx, owner, t)
	case AwaitingNutritionInfo:
		return m.onNutritionInfo(ctx, owner, t)
	case AwaitingBreedName:
		return m.onBreedName(ctx, t)
	case AwaitingDailyRecord:
		return m.onDailyRecord(ctx, owner, t)
	case AwaitingRecordConfirmation:
		return m.onRecordConfirmation(ctx, owner, s, t)
	case AwaitingDailyRecordCheck:
		return m.onDailyRecordCheck(ctx, owner, t)
	case AwaitingFeedingWeight:
		return m.onFeedingWeight(s, t)
	case AwaitingPackageImage:
		return m.onPackageImage(ctx, t)
	case AwaitingFreshFoodImage:
		return m.onFreshFoodImage(ctx, t)
	case AwaitingRestaurantChoice:
		return m.onRestaurantChoice(ctx, t)
	case AwaitingLandmarkName:
		return m.onLandmarkName(ctx, t)
	default:
		return done(welcomeReply())
	}
}

// command normaliza el texto idle a una palabra clave del menú (o "").
func command(raw string) string {
	in := strings.Join(strings.Fields(raw), " ")
	switch in {
	case "1":
		return CmdToxicFoods
	case "2":
		return CmdBreedInfo
	case "3":
		return CmdPackagePhoto
	case "4":
		return CmdFreshFoodPhoto
	case "10":
		return CmdRestaurants
	}
	for _, c := range []string{
		CmdAddPet, CmdPetProfile, CmdMyPets, CmdTargets, CmdToxicFoods, CmdBreedInfo,
		CmdLogIntake, CmdTodayIntake, CmdPackagePhoto, CmdFreshFoodPhoto, CmdRestaurants,
	} {
		if strings.EqualFold(in, c) {
			return c
		}
	}
	return ""
}

func (m *Machine) idle(ctx context.Context, owner string, t Turn) outcome {
	if t.Kind != TurnText {
		return done(welcomeReply())
	}

	switch command(t.Text) {
	case CmdAddPet:
		return stay(text(msgAskPetInfo), AwaitingPetInfo{})
	case CmdPetProfile:
		return stay(text(msgAskDogName), AwaitingDogName{})
	case CmdTargets:
		return stay(askTargetsReply(), AwaitingNutritionInfo{})
	case CmdToxicFoods:
		return done(text(msgToxicFoods))
	case CmdBreedInfo:
		return stay(text(msgAskBreedName), AwaitingBreedName{})
	case CmdLogIntake:
		return stay(text(msgAskRecord), AwaitingDailyRecord{})
	case CmdTodayIntake:
		return stay(text(msgAskRecordDog), AwaitingDailyRecordCheck{})
	case CmdPackagePhoto:
		return stay(Reply{Text: msgAskPackageImage, QuickReplies: photoChoices}, AwaitingPackageImage{})
	case CmdFreshFoodPhoto:
		return stay(Reply{Text: msgAskFreshImage, QuickReplies: photoChoices}, AwaitingFreshFoodImage{})
	case CmdRestaurants:
		return stay(Reply{Text: msgAskRestaurant, QuickReplies: restaurantChoices}, AwaitingRestaurantChoice{})
	case CmdMyPets:
		list, err := m.profiles.List(ctx, owner)
		if err != nil {
			return adapterFailed(msgFailed, err)
		}
		now := m.profiles.Now()
		return done(petListReply(list, func(p pets.Pet) int { return p.AgeYears(now) }))
	default:
		return done(welcomeReply())
	}
}

func (m *Machine) onPetInfo(ctx context.Context, owner string, t Turn) outcome {
	d, err := ParsePetInfo(t.Text)
	if err != nil {
		return failed(KindValidation, text(msgBadPetInfo), AwaitingPetInfo{}, err)
	}

	in, err := m.profiles.Validate(ctx, pets.CreateInput{Name: d.Name, BirthDate: d.BirthDate, WeightKg: d.WeightKg})
	switch {
	case errors.Is(err, nutrition.ErrInvalidWeight):
		return failed(KindDomain, text(msgBadWeight), AwaitingPetInfo{}, err)
	case errors.Is(err, pets.ErrFutureBirthDate):
		return failed(KindValidation, text(msgFutureBirthday), AwaitingPetInfo{}, err)
	case errors.Is(err, pets.ErrInvalidInput):
		return failed(KindValidation, text(msgBadPetInfo), AwaitingPetInfo{}, err)
	case err != nil:
		return adapterFailed(msgFailed, err)
	}

	_, err = m.profiles.Get(ctx, owner, in.Name)
	switch {
	case err == nil:
		return failed(KindConflict, duplicatePetReply(in.Name), AwaitingPetInfo{}, pets.ErrConflict)
	case !errors.Is(err, pets.ErrNotFound):
		return adapterFailed(msgFailed, err)
	}

	age := pets.Pet{BirthDate: in.BirthDate}.AgeYears(m.profiles.Now())
	return stay(confirmPetReply(in, age), AwaitingSaveConfirmation{Draft: in})
}

// yesNo: ok=false si no es Y/N.
func yesNo(raw string) (yes, ok bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	default:
		return false, false
	}
}

func (m *Machine) onSaveConfirmation(ctx context.Context, owner string, s AwaitingSaveConfirmation, t Turn) outcome {
	yes, ok := yesNo(t.Text)
	if !ok {
		return failed(KindValidation, text(msgYesNo), s, nil)
	}
	if !yes {
		return done(text(msgPetNotSaved))
	}

	_, err := m.profiles.Create(ctx, owner, s.Draft)
	switch {
	case errors.Is(err, pets.ErrConflict):
		return failed(KindConflict, duplicatePetReply(s.Draft.Name), AwaitingPetInfo{}, err)
	case err != nil:
		return adapterFailed(msgFailed, err)
	}
	return done(text(msgPetSaved))
}

func (m *Machine) onDogName(ctx context.Context, owner string, t Turn) outcome {
	name := strings.TrimSpace(t.Text)
	if name == "" {
		return stay(text(msgAskDogName), AwaitingDogName{})
	}

	p, err := m.profiles.Get(ctx, owner, name)
	switch {
	case errors.Is(err, pets.ErrNotFound):
		return failed(KindNotFound, petNotFoundReply(name), nil, err)
	case err != nil:
		return adapterFailed(msgFailed, err)
	}
	return done(profileReply(p, p.AgeYears(m.profiles.Now())))
}

func (m *Machine) onNutritionInfo(ctx context.Context, owner string, t Turn) outcome {
	name, raw, err := ParseNutritionInfo(t.Text)
	if err != nil {
		return failed(KindValidation, text(msgBadTargets), AwaitingNutritionInfo{}, err)
	}
	status, err := nutrition.ParseStatus(raw)
	if err != nil {
		return failed(KindDomain, text(msgStatusRange), nil, err)
	}

	// Solo lectura: el estado guardado se cambia por PATCH /pets/{name}.
	p, err := m.profiles.Get(ctx, owner, name)
	switch {
	case errors.Is(err, pets.ErrNotFound):
		return failed(KindNotFound, petNotFoundReply(name), nil, err)
	case err != nil:
		return adapterFailed(msgFailed, err)
	}
	target, err := nutrition.ComputeTarget(p.WeightKg, status)
	if err != nil {
		return failed(KindDomain, text(msgStatusRange), nil, err)
	}
	return done(targetsReply(p, target))
}

func (m *Machine) onBreedName(ctx context.Context, t Turn) outcome {
	name := strings.TrimSpace(t.Text)
	if name == "" {
		return stay(text(msgAskBreedName), AwaitingBreedName{})
	}
	if m.breeds == nil {
		return adapterFailed(msgFailed, errors.New("breed lookup not configured"))
	}

	info, err := m.breeds.GetBreedInfo(ctx, name)
	switch {
	case errors.Is(err, breeds.ErrNotFound):
		return failed(KindNotFound, notFoundReply(name), nil, err)
	case err != nil:
		return adapterFailed(msgFailed, err)
	}
	return done(breedReply(info))
}

func (m *Machine) onDailyRecord(ctx context.Context, owner string, t Turn) outcome {
	d, err := ParseDailyRecord(t.Text)
	if err != nil {
		return failed(KindValidation, text(msgBadRecord), AwaitingDailyRecord{}, err)
	}

	p, err := m.profiles.Get(ctx, owner, d.PetName)
	switch {
	case errors.Is(err, pets.ErrNotFound):
		return failed(KindNotFound, petNotFoundReply(d.PetName), nil, err)
	case err != nil:
		return adapterFailed(msgFailed, err)
	}
	d.PetName = p.Name
	return stay(confirmRecordReply(d), AwaitingRecordConfirmation{Draft: d})
}

// onRecordConfirmation solo escribe tras un "Y" explícito.
func (m *Machine) onRecordConfirmation(ctx context.Context, owner string, s AwaitingRecordConfirmation, t Turn) outcome {
	yes, ok := yesNo(t.Text)
	if !ok {
		return failed(KindValidation, text(msgYesNo), s, nil)
	}
	if !yes {
		return done(text(msgRecordNotSaved))
	}

	rec, err := m.profiles.RecordIntake(ctx, owner, s.Draft.PetName, s.Draft.Calories, s.Draft.WaterML)
	switch {
	case errors.Is(err, pets.ErrNotFound):
		return failed(KindNotFound, petNotFoundReply(s.Draft.PetName), nil, err)
	case err != nil:
		return adapterFailed(msgFailed, err)
	}
	return done(recordSavedReply(rec))
}

func (m *Machine) onDailyRecordCheck(ctx context.Context, owner string, t Turn) outcome {
	name := strings.TrimSpace(t.Text)
	if name == "" {
		return stay(text(msgAskRecordDog), AwaitingDailyRecordCheck{})
	}

	rec, err := m.profiles.TodayRecord(ctx, owner, name)
	switch {
	case errors.Is(err, pets.ErrNoRecord):
		return failed(KindNotFound, noRecordReply(name), nil, err)
	case errors.Is(err, pets.ErrNotFound):
		return failed(KindNotFound, petNotFoundReply(name), nil, err)
	case err != nil:
		return adapterFailed(msgFailed, err)
	}
	return done(todayReply(rec))
}

func (m *Machine) onFeedingWeight(s AwaitingFeedingWeight, t Turn) outcome {
	grams, err := ParseGrams(t.Text)
	if err != nil {
		return failed(KindValidation, text(msgBadGrams), nil, err)
	}
	return done(feedingReply(s.Label, grams, m.packageGrams))
}

func (m *Machine) onPackageImage(ctx context.Context, t Turn) outcome {
	if t.Kind != TurnImage {
		return stay(Reply{Text: msgSendPhoto, QuickReplies: photoChoices}, AwaitingPackageImage{})
	}
	if m.labels == nil {
		return adapterFailed(msgImageFailed, errors.New("label extractor not configured"))
	}

	label, err := m.labels.ExtractLabelNutrition(ctx, t.Image)
	if err != nil {
		return adapterFailed(msgImageFailed, err)
	}
	if len(label) == 0 {
		return failed(KindNotFound, text(msgNoLabel), nil, nil)
	}
	return stay(text(msgAskGrams), AwaitingFeedingWeight{Label: label})
}

func (m *Machine) onFreshFoodImage(ctx context.Context, t Turn) outcome {
	if t.Kind != TurnImage {
		return stay(Reply{Text: msgSendPhoto, QuickReplies: photoChoices}, AwaitingFreshFoodImage{})
	}
	if m.foods == nil {
		return adapterFailed(msgImageFailed, errors.New("food identifier not configured"))
	}

	foods, err := m.foods.IdentifyFoods(ctx, t.Image)
	if err != nil {
		return adapterFailed(msgImageFailed, err)
	}
	return done(freshFoodReply(foods))
}

func (m *Machine) onRestaurantChoice(ctx context.Context, t Turn) outcome {
	choice := strings.TrimSpace(t.Text)
	switch {
	case strings.EqualFold(choice, ChoiceCurrentLocation), choice == "1":
		if t.Location == nil {
			return stay(Reply{Text: msgShareLocation, QuickReplies: restaurantChoices}, AwaitingRestaurantChoice{})
		}
		return m.nearby(ctx, "Dog-friendly restaurants near you:", t.Location.Lat, t.Location.Lon)
	case strings.EqualFold(choice, ChoiceLandmarkName), choice == "2":
		return stay(text(msgAskLandmark), AwaitingLandmarkName{})
	default:
		return failed(KindValidation, Reply{Text: msgPickChoice, QuickReplies: restaurantChoices}, AwaitingRestaurantChoice{}, nil)
	}
}

func (m *Machine) onLandmarkName(ctx context.Context, t Turn) outcome {
	name := strings.TrimSpace(t.Text)
	if name == "" {
		return stay(text(msgAskLandmark), AwaitingLandmarkName{})
	}
	if m.places == nil {
		return adapterFailed(msgFailed, errors.New("places lookup not configured"))
	}

	lat, lon, err := m.places.ResolvePlaceName(ctx, name)
	switch {
	case errors.Is(err, places.ErrNotFound):
		return failed(KindNotFound, notFoundReply(name), nil, err)
	case err != nil:
		return adapterFailed(msgFailed, err)
	}
	return m.nearby(ctx, fmt.Sprintf("Dog-friendly restaurants near %s:", name), lat, lon)
}

func (m *Machine) nearby(ctx context.Context, header string, lat, lon float64) outcome {
	if m.places == nil {
		return adapterFailed(msgFailed, errors.New("places lookup not configured"))
	}
	list, err := m.places.FindNearbyDogFriendlyPlaces(ctx, lat, lon)
	if err != nil {
		return adapterFailed(msgFailed, err)
	}
	return done(placesReply(header, list))
}
