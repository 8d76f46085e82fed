package graph

import "github.com/google/uuid"

// Namespace is the UUID namespace of diagram IDs.
var Namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/deckroute"))

// DiagramID returns the content-derived ID of a serialized diagram.
func DiagramID(data []byte) uuid.UUID {
	return uuid.NewSHA1(Namespace, data)
}
