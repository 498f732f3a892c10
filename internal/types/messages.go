package types

// MessageType represents different types of messages
type MessageType string

const (
	// Client -> Server
	MsgTypeJoinGame       MessageType = "joinGame"
	MsgTypePlayerInput    MessageType = "playerInput"
	MsgTypePlayerShoot    MessageType = "playerShoot"
	MsgTypePredatorAttack MessageType = "predatorAttack"
	MsgTypeFakeTrail      MessageType = "predatorUsedFakeTrail"
	MsgTypeCollectBonus   MessageType = "collectBonusRequest"

	// Server -> Client
	MsgTypeInit               MessageType = "init"
	MsgTypeJoinError          MessageType = "joinError"
	MsgTypePlayerConnected    MessageType = "playerConnected"
	MsgTypePlayerDisconnected MessageType = "playerDisconnected"
	MsgTypePlayerDied         MessageType = "playerDied"
	MsgTypeYouDied            MessageType = "youDied"
	MsgTypeGameState          MessageType = "gameStateUpdate"
	MsgTypeCreateEffect       MessageType = "createEffect"
	MsgTypeBonusCollected     MessageType = "bonusCollected"
)

// Message is the base message structure
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// JoinGamePayload for joinGame messages
type JoinGamePayload struct {
	Name string `json:"name"`
}

// FakeTrailPayload carries the decoy position
type FakeTrailPayload struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

// CollectBonusPayload names the bonus a Hunter wants to pick up
type CollectBonusPayload struct {
	BonusID string `json:"bonusId"`
}

// PlayerState is the public view of a player
type PlayerState struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Angle       float64 `json:"angle"`
	Health      float64 `json:"health"`
	MaxHealth   float64 `json:"maxHealth"`
	Ammo        int     `json:"ammo"`
	MaxAmmo     int     `json:"maxAmmo"`
	Role        Role    `json:"role"`
	IsPredator  bool    `json:"isPredator"`
	IsSprinting bool    `json:"isSprinting"`
	IsAiming    bool    `json:"isAiming"`
}

// BulletState is the public view of a bullet
type BulletState struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// BonusState is the public view of a bonus
type BonusState struct {
	ID     string    `json:"id"`
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	Type   BonusType `json:"type"`
	Amount int       `json:"amount,omitempty"`
}

// WallState is the serialisable shape of a wall sent on init
type WallState struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Length     float64 `json:"length"`
	Width      float64 `json:"width"`
	Angle      float64 `json:"angle"`
	IsBoundary bool    `json:"isBoundary"`
}

// InitPayload is sent once to a player after a successful join
type InitPayload struct {
	SelfID  string        `json:"selfId"`
	Players []PlayerState `json:"players"`
	Walls   []WallState   `json:"walls"`
}

// ErrorPayload for error messages
type ErrorPayload struct {
	Message string `json:"message"`
}

// PlayerIDPayload for playerDisconnected and playerDied
type PlayerIDPayload struct {
	ID string `json:"id"`
}

// YouDiedPayload is sent to the victim before removal
type YouDiedPayload struct {
	KillerType string `json:"killerType"`
}

// GameStatePayload is broadcast every tick
type GameStatePayload struct {
	Players       []PlayerState `json:"players"`
	Bullets       []BulletState `json:"bullets"`
	Bonuses       []BonusState  `json:"bonuses"`
	CycleTime     int64         `json:"cycleTime"`     // ms
	CycleDuration int64         `json:"cycleDuration"` // ms
	CycleCount    int           `json:"cycleCount"`
}

// EffectSpeedCircle is the decoy trail effect
const EffectSpeedCircle = "speedCircle"

// EffectPayload for cosmetic effects
type EffectPayload struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// BonusCollectedPayload for bonusCollected
type BonusCollectedPayload struct {
	BonusID string `json:"bonusId"`
}
