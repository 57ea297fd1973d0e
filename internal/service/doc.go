// Package service contains the application use cases. It orchestrates the
// query compiler, the stores and the suggestion client to fulfil API
// requests, and translates store errors into service-level errors.
//
// Key components:
//
//   - TaskService: listing (general and "today"), single fetch, create,
//     partial update, bulk delete, today flag, completed-task cleanup and
//     completion statistics.
//   - UserService: registration and login.
//   - SuggestionService: bounded calls to the AI planning assistant.
//
// Every mutating call takes the acting user's id explicitly. Services never
// read the actor from ambient state.
//
// The service layer depends on domain entities and the store interfaces,
// never on a specific database implementation.
package service
