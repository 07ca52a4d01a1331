package server

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"orc/cases"
	"orc/config"
	"orc/expander"
	"orc/hex"
	"orc/model"
	"orc/props"
)

// Hub serves one websocket client: it routes requests to the component
// solvers and streams the structured results back.
type Hub struct {
	oracle props.Oracle
	solver config.Solver
	conn   *websocket.Conn
	// request
	msg chan model.Msg
	// response
	envSet  chan model.Msg
	hexDone chan model.Msg
	expDone chan model.Msg
	stopped chan model.Msg
}

func NewHub() *Hub {
	return &Hub{
		solver:  config.Default(),
		msg:     make(chan model.Msg, 10),
		envSet:  make(chan model.Msg, 10),
		hexDone: make(chan model.Msg, 10),
		expDone: make(chan model.Msg, 10),
		stopped: make(chan model.Msg, 10),
	}
}

func (h *Hub) handleResponse() {
	for {
		select {
		case reply := <-h.envSet:
			h.write(&reply)
		case reply := <-h.hexDone:
			reply.Content = h.solveEvaporator()
			h.write(&reply)
		case reply := <-h.expDone:
			reply.Content = h.solveExpander()
			h.write(&reply)
		case reply := <-h.stopped:
			h.write(&reply)
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
}

func (h *Hub) handleRequest() {
	for {
		select {
		case msg := <-h.msg:
			switch msg.Type {
			case "env":
				h.solver = config.Load(msg.Content)
				h.envSet <- model.Msg{Type: "envSet", Content: "env is set"}
			case "hex":
				h.hexDone <- model.Msg{Type: "hexSolved"}
			case "expander":
				h.expDone <- model.Msg{Type: "expanderSolved"}
			case "stop":
				h.stopped <- model.Msg{Type: "stopped", Content: "stopped"}
			default:
				log.Println("no such type")
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
}

func (h *Hub) write(reply *model.Msg) {
	err := h.conn.WriteJSON(reply)
	if err != nil {
		log.Println("err: ", err)
	}
}

func (h *Hub) solveEvaporator() string {
	hot, cold, cfg := cases.Evaporator()
	cfg.Solver = h.solver
	res, err := hex.Solve(h.oracle, hot, cold, cfg)
	if err != nil {
		log.Println("err: ", err)
		return errContent(err)
	}
	return marshal(res)
}

func (h *Hub) solveExpander() string {
	su, pex, tamb, cfg := cases.Expander()
	cfg.Solver = h.solver
	res, err := expander.Solve(h.oracle, su, pex, tamb, cfg)
	if err != nil {
		log.Println("err: ", err)
		return errContent(err)
	}
	return marshal(res)
}

func marshal(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		log.Println("err: ", err)
		return errContent(err)
	}
	return string(data)
}

func errContent(err error) string {
	data, _ := json.Marshal(map[string]string{"error": err.Error()})
	return string(data)
}
