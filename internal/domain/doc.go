// Package domain contains the core business entities and value objects of
// the task tracker: tasks, their two-literal completion status, calendar
// dates, presence-aware update patches and users. It has no knowledge of
// storage or transport.
package domain
