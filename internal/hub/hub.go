package hub

import (
	"context"

	"go.uber.org/zap"

	"github.com/jmreyes/dicesheet-backend/internal/session"
	"github.com/jmreyes/dicesheet-backend/internal/sheet"
)

type HubMsg interface{ isHubMsg() }

type CreateSheet struct {
	Code  string
	State session.Session
	Reply chan *sheet.Sheet
}

type GetSheet struct {
	Code  string
	Reply chan *sheet.Sheet
}

type EnsureSheet struct {
	Code  string
	State session.Session // only used if creation happens
	Reply chan *sheet.Sheet
}

type RemoveSheet struct {
	Code string
}

type ShutdownHub struct{}

func (CreateSheet) isHubMsg() {}
func (GetSheet) isHubMsg()    {}
func (EnsureSheet) isHubMsg() {}
func (RemoveSheet) isHubMsg() {}
func (ShutdownHub) isHubMsg() {}

// Hub is the registry of live sheets keyed by code. Sheet actors are
// created lazily and share the hub's saver and logger.
type Hub struct {
	inbox  chan HubMsg
	sheets map[string]*sheet.Sheet
	saver  sheet.Saver
	log    *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub(parent context.Context, saver sheet.Saver, log *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:  make(chan HubMsg, 64),
		sheets: make(map[string]*sheet.Sheet),
		saver:  saver,
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateSheet:
				if sh := h.sheets[msg.Code]; sh != nil {
					msg.Reply <- sh
					break
				}
				sh := sheet.New(h.ctx, msg.Code, msg.State, h.saver, h.log)
				h.sheets[msg.Code] = sh
				msg.Reply <- sh

			case GetSheet:
				msg.Reply <- h.sheets[msg.Code] // May be nil

			case EnsureSheet:
				if sh := h.sheets[msg.Code]; sh != nil {
					msg.Reply <- sh
					break
				}

				sh := sheet.New(h.ctx, msg.Code, msg.State, h.saver, h.log)
				h.sheets[msg.Code] = sh
				msg.Reply <- sh

			case RemoveSheet:
				delete(h.sheets, msg.Code)

			case ShutdownHub:
				for _, sh := range h.sheets {
					sh.Inbox() <- sheet.Shutdown{}
				}
				clear(h.sheets)
				h.cancel()
			}
		}
	}
}
