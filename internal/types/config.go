package types

import "time"

// BusConfig represents the GPIO lines making up the charlieplex bus
type BusConfig struct {
	Chip     string `json:"chip"`
	Lines    []int  `json:"lines"`
	Consumer string `json:"consumer"`
}

// TimerConfig represents the hardware timer and software divider
type TimerConfig struct {
	OscillatorHz int    `json:"oscillator_hz"`
	Prescaler    int    `json:"prescaler"`
	Divider      string `json:"divider"`
	Ratio        int    `json:"ratio"`
	Period       int    `json:"period"`
}

// AnimationConfig represents the animation scheduler settings
type AnimationConfig struct {
	Mode          string `json:"mode"`
	Table         string `json:"table"`
	UpdateRate    int    `json:"update_rate"`
	RampStep      int    `json:"ramp_step"`
	MinUpdateRate int    `json:"min_update_rate"`
	SettleDelayUS int    `json:"settle_delay_us"`
}

// SettleDelay returns the per-LED delay as a duration
func (c AnimationConfig) SettleDelay() time.Duration {
	return time.Duration(c.SettleDelayUS) * time.Microsecond
}
