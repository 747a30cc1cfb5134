package shared

// Messages returned in response bodies by both the server and the lambda handlers
const (
	MSG_ID_NOT_PROVIDED     = "ID not provided"
	MSG_INVALID_ID          = "Invalid ID"
	MSG_PERSON_NOT_FOUND    = "Person not found"
	MSG_NO_PEOPLE_OF_TYPE   = "No people found with the given type"
	MSG_NO_PEOPLE_TO_DELETE = "No people found with the given type to delete"
	MSG_PERSON_DELETED      = "Person deleted successfully!"
	MSG_PEOPLE_DELETED      = "People deleted successfully!"
	MSG_PEOPLE_IMPORTED     = "People imported successfully!"
	MSG_UNKNOWN_ERROR       = "Unknown error"
)
