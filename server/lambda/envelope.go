package lambda

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

var defaultHeaders = map[string]string{
	"Content-Type":                "application/json",
	"Access-Control-Allow-Origin": "*",
}

type errorBody struct {
	Error string `json:"error"`
}

// Success wraps data in an API Gateway response, 200 unless a status code is given
func Success(data interface{}, statusCode ...int) events.APIGatewayProxyResponse {
	return envelope(data, status(http.StatusOK, statusCode))
}

// Error wraps message as {"error": message}, 500 unless a status code is given
func Error(message string, statusCode ...int) events.APIGatewayProxyResponse {
	return envelope(errorBody{Error: message}, status(http.StatusInternalServerError, statusCode))
}

func envelope(data interface{}, statusCode int) events.APIGatewayProxyResponse {
	body, err := json.Marshal(data)
	if err != nil {
		statusCode = http.StatusInternalServerError
		body, _ = json.Marshal(errorBody{Error: err.Error()})
	}

	headers := make(map[string]string, len(defaultHeaders))
	for k, v := range defaultHeaders {
		headers[k] = v
	}

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers:    headers,
		Body:       string(body),
	}
}

func status(fallback int, given []int) int {
	if len(given) > 0 {
		return given[0]
	}
	return fallback
}
