package domain

// PublicationState tells whether the organizer has fixed the venue.
type PublicationState string

const (
	PublicationUnpublished PublicationState = "UNPUBLISHED"
	PublicationPublished   PublicationState = "PUBLISHED"
)

func (s PublicationState) String() string { return string(s) }

func (s PublicationState) IsValid() bool {
	switch s {
	case PublicationUnpublished, PublicationPublished:
		return true
	}
	return false
}

// ConnectionState is the lifecycle state of the push stream. It is never persisted.
type ConnectionState string

const (
	ConnectionDisconnected ConnectionState = "DISCONNECTED"
	ConnectionConnecting   ConnectionState = "CONNECTING"
	ConnectionConnected    ConnectionState = "CONNECTED"
	ConnectionError        ConnectionState = "ERROR"
)

func (s ConnectionState) String() string { return string(s) }

func (s ConnectionState) IsValid() bool {
	switch s {
	case ConnectionDisconnected, ConnectionConnecting, ConnectionConnected, ConnectionError:
		return true
	}
	return false
}

// Active reports whether a connection attempt is in flight or established.
func (s ConnectionState) Active() bool {
	return s == ConnectionConnecting || s == ConnectionConnected
}
