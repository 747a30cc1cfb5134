package lambda

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Daskott/people/server/importer"
	"github.com/Daskott/people/server/logger"
	"github.com/Daskott/people/server/models"
	"github.com/Daskott/people/shared"
	"github.com/aws/aws-lambda-go/events"
)

var logg = logger.NewLogger()

// HandlerFunc is the signature lambda.Start accepts for API Gateway proxy events
type HandlerFunc func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

type Importer interface {
	Import(ctx context.Context) (importer.Result, error)
}

// Handlers exposes one function per route. Each can be deployed on its own.
type Handlers struct {
	Store    models.PersonRepository
	Importer Importer
}

// ByName returns the handler registered under name, e.g. "get-by-type"
func (h *Handlers) ByName(name string) (HandlerFunc, error) {
	handlers := map[string]HandlerFunc{
		"get":            h.Get,
		"get-by-type":    h.GetByType,
		"create":         h.Create,
		"update":         h.Update,
		"delete":         h.Delete,
		"update-by-type": h.UpdateByType,
		"delete-by-type": h.DeleteByType,
		"import":         h.Import,
	}

	handler, ok := handlers[name]
	if !ok {
		return nil, fmt.Errorf("unknown handler %q", name)
	}
	return handler, nil
}

func (h *Handlers) Get(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	people, err := h.Store.FindAll(ctx)
	if err != nil {
		return storeError(err), nil
	}

	return Success(people), nil
}

func (h *Handlers) GetByType(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	people, err := h.Store.FindByType(ctx, req.PathParameters["type"])
	if err != nil {
		return storeError(err), nil
	}

	if len(people) == 0 {
		return Error(shared.MSG_NO_PEOPLE_OF_TYPE, http.StatusNotFound), nil
	}

	return Success(people), nil
}

func (h *Handlers) Create(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	input := models.PersonInput{}
	if err := decodeBody(req, &input); err != nil {
		return Error(err.Error(), http.StatusBadRequest), nil
	}

	if err := shared.Validate.Struct(input); err != nil {
		return Error(shared.ValidationMessage(err), http.StatusBadRequest), nil
	}

	person := input.Person()
	if err := h.Store.Create(ctx, &person); err != nil {
		return storeError(err), nil
	}

	return Success(person, http.StatusCreated), nil
}

func (h *Handlers) Update(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	id, ok := pathID(req)
	if !ok {
		return Error(shared.MSG_ID_NOT_PROVIDED, http.StatusBadRequest), nil
	}

	data := models.PersonUpdate{}
	if err := decodeBody(req, &data); err != nil {
		return Error(err.Error(), http.StatusBadRequest), nil
	}

	person, err := h.Store.UpdateByID(ctx, id, data)
	if err != nil {
		return storeError(err), nil
	}

	return Success(person), nil
}

func (h *Handlers) Delete(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	id, ok := pathID(req)
	if !ok {
		return Error(shared.MSG_ID_NOT_PROVIDED, http.StatusBadRequest), nil
	}

	if err := h.Store.DeleteByID(ctx, id); err != nil {
		return storeError(err), nil
	}

	return Success(map[string]string{"message": shared.MSG_PERSON_DELETED}), nil
}

func (h *Handlers) UpdateByType(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	data := models.PersonUpdate{}
	if err := decodeBody(req, &data); err != nil {
		return Error(err.Error(), http.StatusBadRequest), nil
	}

	count, err := h.Store.UpdateByType(ctx, req.PathParameters["type"], data)
	if err != nil {
		return storeError(err), nil
	}

	if count == 0 {
		return Error(shared.MSG_NO_PEOPLE_OF_TYPE, http.StatusNotFound), nil
	}

	return Success(map[string]int64{"count": count}), nil
}

func (h *Handlers) DeleteByType(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	count, err := h.Store.DeleteByType(ctx, req.PathParameters["type"])
	if err != nil {
		return storeError(err), nil
	}

	if count == 0 {
		return Error(shared.MSG_NO_PEOPLE_TO_DELETE, http.StatusNotFound), nil
	}

	return Success(map[string]interface{}{"message": shared.MSG_PEOPLE_DELETED, "count": count}), nil
}

func (h *Handlers) Import(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if h.Importer == nil {
		return Error("import is not configured", http.StatusNotImplemented), nil
	}

	result, err := h.Importer.Import(ctx)
	if err != nil {
		logg.Error(err)
		return Error(err.Error()), nil
	}

	return Success(map[string]interface{}{
		"message":  shared.MSG_PEOPLE_IMPORTED,
		"inserted": result.Inserted,
		"skipped":  result.Skipped,
	}), nil
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func storeError(err error) events.APIGatewayProxyResponse {
	if errors.Is(err, models.ErrPersonNotFound) {
		return Error(shared.MSG_PERSON_NOT_FOUND, http.StatusNotFound)
	}

	logg.Error(err)
	return Error(err.Error())
}

func pathID(req events.APIGatewayProxyRequest) (uint, bool) {
	id, err := strconv.ParseUint(req.PathParameters["id"], 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func decodeBody(req events.APIGatewayProxyRequest, v interface{}) error {
	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return err
		}
		body = decoded
	}

	if len(body) == 0 {
		body = []byte("{}")
	}

	return json.Unmarshal(body, v)
}
