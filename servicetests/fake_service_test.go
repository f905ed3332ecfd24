package servicetests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"unicode/utf8"

	"github.com/evgenybelkin/service-e2e-tests/config"
	"github.com/evgenybelkin/service-e2e-tests/taxcalc"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

const fakeToken = "test-token"

var fieldLabels = map[string]string{
	config.FieldName:     "Наименование",
	config.FieldQuantity: "Количество",
	config.FieldPrice:    "Цена без НДС",
	config.FieldTax:      "НДС",
	config.FieldGross:    "Цена с НДС",
}

type fakeRecord struct {
	UUID     string
	Name     string
	Quantity int64
	Price    decimal.Decimal
	Tax      decimal.Decimal
	Gross    decimal.Decimal
}

// fakeService behaves like the service catalog API, closely enough for the API tests to run
// against it. Its faults can be switched on to check that the suite notices them.
type fakeService struct {
	// collectionEnvelope makes create return the record as the first element of a list.
	collectionEnvelope bool
	// taxError is added to the tax that the service computes.
	taxError decimal.Decimal
	// garbledCreate makes create return a body that is not JSON.
	garbledCreate bool
	// truncateNames makes the service cut over-long names instead of rejecting them.
	truncateNames bool

	records map[string]fakeRecord
	created int
	deleted int
	lock    sync.Mutex
}

func newFakeService() *fakeService {
	return &fakeService{records: make(map[string]fakeRecord)}
}

func (f *fakeService) router() http.Handler {
	router := mux.NewRouter()
	api := router.PathPrefix("/api/service").Subrouter()
	api.Use(f.authenticate)
	api.HandleFunc("/", f.createService).Methods(http.MethodPost)
	api.HandleFunc("/{id}", f.getService).Methods(http.MethodGet)
	api.HandleFunc("/{id}", f.replaceService).Methods(http.MethodPut)
	api.HandleFunc("/{id}", f.deleteService).Methods(http.MethodDelete)
	return router
}

func (f *fakeService) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+fakeToken {
			respondWithJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"name":    "Unauthorized",
				"message": "Your request was made with invalid credentials.",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *fakeService) createService(w http.ResponseWriter, r *http.Request) {
	record, errs := f.decode(r)
	if len(errs) > 0 {
		respondWithJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{"errors": errs})
		return
	}
	record.UUID = uuid.New().String()

	f.lock.Lock()
	f.records[record.UUID] = record
	f.created++
	f.lock.Unlock()

	switch {
	case f.garbledCreate:
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("Created"))
	case f.collectionEnvelope:
		respondWithJSON(w, http.StatusCreated, map[string]interface{}{
			config.CollectionField: []interface{}{record.asJSON()},
			config.PaginationField: map[string]int{"page": 1, "pageSize": 20, "totalCount": 1},
		})
	default:
		respondWithJSON(w, http.StatusCreated, record.asJSON())
	}
}

func (f *fakeService) getService(w http.ResponseWriter, r *http.Request) {
	f.lock.Lock()
	record, ok := f.records[mux.Vars(r)["id"]]
	f.lock.Unlock()
	if !ok {
		respondNotFound(w)
		return
	}
	respondWithJSON(w, http.StatusOK, record.asJSON())
}

func (f *fakeService) replaceService(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	f.lock.Lock()
	_, ok := f.records[id]
	f.lock.Unlock()
	if !ok {
		respondNotFound(w)
		return
	}
	record, errs := f.decode(r)
	if len(errs) > 0 {
		respondWithJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{"errors": errs})
		return
	}
	record.UUID = id

	f.lock.Lock()
	f.records[id] = record
	f.lock.Unlock()
	respondWithJSON(w, http.StatusOK, record.asJSON())
}

func (f *fakeService) deleteService(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	f.lock.Lock()
	_, ok := f.records[id]
	if ok {
		delete(f.records, id)
		f.deleted++
	}
	f.lock.Unlock()
	if !ok {
		respondNotFound(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (f *fakeService) remaining() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return len(f.records)
}

// decode validates a request body the way the real service does, and computes the stored tax and
// gross from the price.
func (f *fakeService) decode(r *http.Request) (fakeRecord, map[string][]string) {
	var body map[string]interface{}
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&body); err != nil {
		return fakeRecord{}, map[string][]string{"body": {err.Error()}}
	}

	errs := make(map[string][]string)
	fail := func(field, format string, args ...interface{}) {
		errs[field] = append(errs[field], fmt.Sprintf(format, args...))
	}
	lim := config.DefaultLimits()
	maxInt := decimal.NewFromInt(lim.MaxInt)
	minQuantity := decimal.NewFromInt(lim.QuantityMin)

	var record fakeRecord
	switch name := body[config.FieldName].(type) {
	case nil:
		fail(config.FieldName, "Необходимо заполнить «%s».", fieldLabels[config.FieldName])
	case json.Number:
		record.Name = name.String()
	case string:
		switch {
		case name == "":
			fail(config.FieldName, "Необходимо заполнить «%s».", fieldLabels[config.FieldName])
		case utf8.RuneCountInString(name) > lim.NameMaxLength && f.truncateNames:
			record.Name = truncatedName(name, lim.NameMaxLength)
		case utf8.RuneCountInString(name) > lim.NameMaxLength:
			fail(config.FieldName, "Значение «%s» должно содержать максимум %d символов.", fieldLabels[config.FieldName], lim.NameMaxLength)
		default:
			record.Name = name
		}
	default:
		fail(config.FieldName, "Значение «%s» должно быть строкой.", fieldLabels[config.FieldName])
	}

	amounts := make(map[string]decimal.Decimal)
	for _, field := range []string{config.FieldQuantity, config.FieldPrice, config.FieldTax, config.FieldGross} {
		label := fieldLabels[field]
		switch v := body[field].(type) {
		case nil:
			fail(field, "Необходимо заполнить «%s».", label)
		case json.Number:
			d, err := decimal.NewFromString(v.String())
			if err != nil {
				fail(field, "Значение «%s» должно быть числом.", label)
				continue
			}
			amounts[field] = d
		default:
			fail(field, "Значение «%s» должно быть числом.", label)
		}
	}

	if q, ok := amounts[config.FieldQuantity]; ok {
		switch {
		case !q.IsInteger():
			fail(config.FieldQuantity, "Значение «%s» должно быть целым числом.", fieldLabels[config.FieldQuantity])
		case q.LessThan(minQuantity):
			fail(config.FieldQuantity, "Значение «%s» должно быть не меньше %s.", fieldLabels[config.FieldQuantity], minQuantity)
		case q.GreaterThan(maxInt):
			fail(config.FieldQuantity, "Значение «%s» не должно превышать %s.", fieldLabels[config.FieldQuantity], maxInt)
		default:
			record.Quantity = q.IntPart()
		}
	}

	price, hasPrice := amounts[config.FieldPrice]
	if hasPrice {
		switch {
		case price.LessThan(lim.PriceMin):
			fail(config.FieldPrice, "Значение «%s» должно быть не меньше %s.", fieldLabels[config.FieldPrice], lim.PriceMin)
			hasPrice = false
		case price.GreaterThan(maxInt):
			fail(config.FieldPrice, "Значение «%s» не должно превышать %s.", fieldLabels[config.FieldPrice], maxInt)
			hasPrice = false
		}
	}

	// The tax of a very small price rounds to zero, and is then allowed to be zero.
	minTax := lim.TaxMin
	if hasPrice && taxcalc.ComputeTax(price).LessThan(lim.TaxMin) {
		minTax = decimal.Zero
	}
	if tax, ok := amounts[config.FieldTax]; ok && tax.LessThan(minTax) {
		fail(config.FieldTax, "Значение «%s» должно быть не меньше %s.", fieldLabels[config.FieldTax], lim.TaxMin)
	}
	if gross, ok := amounts[config.FieldGross]; ok && gross.LessThan(lim.GrossMin) {
		fail(config.FieldGross, "Значение «%s» должно быть не меньше %s.", fieldLabels[config.FieldGross], lim.GrossMin)
	}

	if len(errs) > 0 {
		return fakeRecord{}, errs
	}
	record.Price = price
	record.Tax = taxcalc.ComputeTax(price).Add(f.taxError)
	record.Gross = taxcalc.ComputeGross(price).Add(f.taxError)
	return record, nil
}

func (r fakeRecord) asJSON() map[string]interface{} {
	return map[string]interface{}{
		config.FieldUUID:     r.UUID,
		config.FieldName:     r.Name,
		"description":        "",
		config.FieldQuantity: r.Quantity,
		config.FieldPrice:    json.Number(r.Price.StringFixed(2)),
		config.FieldTax:      json.Number(r.Tax.StringFixed(2)),
		config.FieldGross:    json.Number(r.Gross.StringFixed(2)),
	}
}

func respondNotFound(w http.ResponseWriter) {
	respondWithJSON(w, http.StatusNotFound, map[string]interface{}{
		"name":    "Not Found",
		"message": "Service not found.",
	})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func truncatedName(name string, max int) string {
	return string([]rune(name)[:max])
}
