package conversation

// TurnKind distingue texto de imagen.
type TurnKind string

const (
	TurnText  TurnKind = "text"
	TurnImage TurnKind = "image"
)

// Location es una ubicación compartida por el usuario junto al turno.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Turn es un mensaje entrante de un owner.
type Turn struct {
	OwnerID  string
	Kind     TurnKind
	Text     string
	Image    []byte
	Location *Location
}

func TextTurn(owner, text string) Turn {
	return Turn{OwnerID: owner, Kind: TurnText, Text: text}
}

func ImageTurn(owner string, image []byte) Turn {
	return Turn{OwnerID: owner, Kind: TurnImage, Image: image}
}

// QuickAction es el tipo de botón de respuesta rápida; el transporte decide cómo dibujarlo.
type QuickAction string

const (
	ActionMessage    QuickAction = "message"
	ActionCamera     QuickAction = "camera"
	ActionCameraRoll QuickAction = "camera_roll"
	ActionLocation   QuickAction = "location"
)

type QuickReply struct {
	Label  string      `json:"label"`
	Text   string      `json:"text,omitempty"` // texto enviado al pulsar (ActionMessage)
	Action QuickAction `json:"action"`
}

// Reply es la única respuesta de un turno.
type Reply struct {
	Text         string       `json:"reply"`
	QuickReplies []QuickReply `json:"quick_replies,omitempty"`
}
