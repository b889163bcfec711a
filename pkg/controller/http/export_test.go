package http

// StatusForError exposes the error mapping to tests
var StatusForError = statusForError
