package domain

import "beaconpair/internal/core/iac"

// ReceiveInput is one IAC payload, either a single text value or ordered chunks.
// Exactly one of the two must be present; an empty payload or chunk list is allowed
// and simply yields an unsupported outcome
// swagger:model
type ReceiveInput struct {
	Payload *string  `json:"payload,omitempty" validate:"required_without=Chunks,excluded_with=Chunks,omitnil,max=65536" example:"tezos://?type=tzip10&data=..."`
	Chunks  []string `json:"chunks,omitempty" validate:"required_without=Payload,max=64,dive,max=65536"`
}

// Input converts the transport payload to the channel input
func (in ReceiveInput) Input() iac.Input {
	if in.Payload != nil {
		return iac.Text(*in.Payload)
	}
	return iac.Chunks(in.Chunks...)
}

// HandlerInfo describes a registered IAC handler
type HandlerInfo struct {
	Name     string `json:"name" example:"BeaconHandler"`
	Position int    `json:"position" example:"0"`
}
