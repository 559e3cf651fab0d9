package domain

const (
	// DefaultSound is the sentinel for the platform default sound.
	DefaultSound = "default"

	// PreferredDefaultSound is what new alarms get, and what unknown
	// stored values are normalized to.
	PreferredDefaultSound = "analog_alarm"

	// DefaultChannelID is the notification channel used when an alarm
	// carries the default sound or one the platform does not know.
	DefaultChannelID = "holiday-alarm-channel"

	// channelPrefix prefixes per-sound notification channels.
	channelPrefix = "holiday-alarm-"
)

// AlarmSound describes one entry of the known alarm sound set.
type AlarmSound struct {
	ID          string `json:"id"          yaml:"id"`
	Name        string `json:"name"        yaml:"name"`
	Description string `json:"description" yaml:"description,omitempty"`
}

// SoundSet is the closed set of known alarm sounds. The set is fixed
// after startup; it is built from the built-in sounds plus an optional
// catalog file.
type SoundSet struct {
	sounds []AlarmSound
	byID   map[string]AlarmSound
}

// builtinSounds ship with the application. Each id must have a matching
// audio resource on the notification platform.
var builtinSounds = []AlarmSound{
	{ID: "analog_alarm", Name: "Analog alarm", Description: "Classic analog clock bell"},
	{ID: "digital_alarm", Name: "Digital alarm", Description: "Digital beep pattern"},
}

// DefaultSoundSet returns the built-in sound set.
func DefaultSoundSet() *SoundSet {
	set := &SoundSet{byID: make(map[string]AlarmSound, len(builtinSounds))}
	for _, sound := range builtinSounds {
		set.Add(sound)
	}
	return set
}

// Add registers a sound, replacing any existing entry with the same id.
func (s *SoundSet) Add(sound AlarmSound) {
	if _, exists := s.byID[sound.ID]; !exists {
		s.sounds = append(s.sounds, sound)
	} else {
		for i := range s.sounds {
			if s.sounds[i].ID == sound.ID {
				s.sounds[i] = sound
				break
			}
		}
	}
	s.byID[sound.ID] = sound
}

// All returns the sounds in registration order.
func (s *SoundSet) All() []AlarmSound {
	out := make([]AlarmSound, len(s.sounds))
	copy(out, s.sounds)
	return out
}

// IsValid reports whether id names a known sound.
// The "default" sentinel is intentionally not part of the set.
func (s *SoundSet) IsValid(id string) bool {
	if id == "" {
		return false
	}
	_, ok := s.byID[id]
	return ok
}

// Normalize maps a stored sound id onto the closed set, falling back to
// the preferred default for absent or unrecognized values. The
// "default" sentinel is a legitimate stored value and passes through.
func (s *SoundSet) Normalize(id string) string {
	if id == DefaultSound || s.IsValid(id) {
		return id
	}
	return PreferredDefaultSound
}

// Name returns the display name for a sound id, or the preferred
// default's name when the id is unknown.
func (s *SoundSet) Name(id string) string {
	if sound, ok := s.byID[id]; ok {
		return sound.Name
	}
	if sound, ok := s.byID[PreferredDefaultSound]; ok {
		return sound.Name
	}
	return PreferredDefaultSound
}

// ChannelFor resolves the notification channel for a sound id.
// The default sentinel and unrecognized ids map to the default channel.
func (s *SoundSet) ChannelFor(id string) string {
	if id == "" || id == DefaultSound || !s.IsValid(id) {
		return DefaultChannelID
	}
	return channelPrefix + id
}
