// Package storage provides persistent storage for the smart pantry.
// It uses BadgerDB as the embedded database and stores values as JSON.
package storage
