package registry

import (
	"encoding/json"

	"github.com/mint-labs/nft-registry/common"
	"github.com/sirupsen/logrus"
)

// NFT_STANDARD_NAME is the standard every emitted event is scoped to.
const NFT_STANDARD_NAME = "nep171"
const NFT_METADATA_SPEC = "1.0.0"
const NFT_EVENTS_VERSION = "1.1.0"

const (
	EVENT_CONTRACT_METADATA_UPDATE = "contract_metadata_update"
	EVENT_NFT_METADATA_UPDATE      = "nft_metadata_update"
	EVENT_NFT_MINT                 = "nft_mint"
	EVENT_NFT_TRANSFER             = "nft_transfer"
)

type Event struct {
	Standard string      `json:"standard"`
	Version  string      `json:"version"`
	Event    string      `json:"event"`
	Data     interface{} `json:"data"`
}

type MintEventData struct {
	OwnerId  common.Account   `json:"owner_id"`
	TokenIds []common.TokenId `json:"token_ids"`
}

type TransferEventData struct {
	OldOwnerId common.Account   `json:"old_owner_id"`
	NewOwnerId common.Account   `json:"new_owner_id"`
	TokenIds   []common.TokenId `json:"token_ids"`
}

type SeriesEventData struct {
	SeriesId common.SeriesId `json:"series_id"`
}

// EventSink receives the structured payload after each committed state
// change. The registry never calls it before the store mutation is durable.
type EventSink interface {
	Emit(event *Event)
}

func newEvent(kind string, data interface{}) *Event {
	return &Event{
		Standard: NFT_STANDARD_NAME,
		Version:  NFT_EVENTS_VERSION,
		Event:    kind,
		Data:     data,
	}
}

// LogSink writes events in the NEP-297 log form.
type LogSink struct {
	log *logrus.Entry
}

func NewLogSink() *LogSink {
	return &LogSink{log: common.GetLoggerEntry("event")}
}

func (p *LogSink) Emit(event *Event) {
	buf, err := json.Marshal(event)
	if err != nil {
		p.log.Errorf("marshal event %s failed, %v", event.Event, err)
		return
	}
	p.log.Infof("EVENT_JSON:%s", string(buf))
}

// NullSink drops events, used by tools that replay state.
type NullSink struct{}

func (p *NullSink) Emit(event *Event) {}
