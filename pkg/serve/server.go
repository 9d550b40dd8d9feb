package serve

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/praetorian-inc/rulebridge/pkg/ruleset"
)

// Version is the server protocol version
const Version = "1.0.0"

// Server answers rule set requests over a line-delimited JSON stream
type Server struct {
	generator *ruleset.Generator
	encoder   *json.Encoder
	decoder   *json.Decoder
}

// NewServer creates a new streaming server
func NewServer(generator *ruleset.Generator, in io.Reader, out io.Writer) *Server {
	if generator == nil {
		generator = ruleset.NewGenerator()
	}
	return &Server{
		generator: generator,
		encoder:   json.NewEncoder(out),
		decoder:   json.NewDecoder(bufio.NewReader(in)),
	}
}

// Run starts the server main loop
func (s *Server) Run(ctx context.Context) error {
	// Send ready signal
	s.sendReady()

	// Use buffered channels for incoming requests
	reqChan := make(chan Request, 1)
	errChan := make(chan error, 1)

	go func() {
		for {
			var req Request
			if err := s.decoder.Decode(&req); err != nil {
				errChan <- err
				return
			}
			select {
			case reqChan <- req:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Process requests until stdin closes or context cancels
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errChan:
			// Drain any pending requests before handling EOF
			for {
				select {
				case req := <-reqChan:
					if s.processRequest(req) {
						return nil
					}
				default:
					if err == io.EOF {
						return nil
					}
					s.sendError("decode", err.Error())
					return nil
				}
			}
		case req := <-reqChan:
			if s.processRequest(req) {
				return nil
			}
		}
	}
}

// processRequest handles a single request and returns true if the server should exit
func (s *Server) processRequest(req Request) bool {
	switch req.Type {
	case "generate":
		s.handleGenerate(req.Payload)
	case "action_text":
		s.handleActionText(req.Payload)
	case "close":
		return true
	default:
		s.sendError("unknown", "unknown request type: "+req.Type)
	}
	return false
}

func (s *Server) sendReady() {
	s.sendData("ready", ReadyData{Version: Version})
}

func (s *Server) handleGenerate(payload json.RawMessage) {
	var p GeneratePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("generate", err.Error())
		return
	}

	rs, err := s.generator.Generate(p.Language, p.Rules, p.Properties)
	if err != nil {
		s.sendError("generate", err.Error())
		return
	}

	switch p.Format {
	case "", "json":
		s.sendData("generate", GenerateResult{RuleSet: rs})
	case "xml":
		var buf bytes.Buffer
		if err := rs.WriteXML(&buf); err != nil {
			s.sendError("generate", err.Error())
			return
		}
		s.sendData("generate", GenerateResult{XML: buf.String()})
	default:
		s.sendError("generate", fmt.Sprintf("unsupported format: %s", p.Format))
	}
}

func (s *Server) handleActionText(payload json.RawMessage) {
	var p ActionTextPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("action_text", err.Error())
		return
	}

	text, err := ruleset.ActionText(ruleset.Action(p.Action))
	if err != nil {
		s.sendError("action_text", err.Error())
		return
	}

	s.sendData("action_text", ActionTextResult{Text: text})
}

func (s *Server) sendData(respType string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.sendError(respType, err.Error())
		return
	}
	s.encoder.Encode(Response{
		Success: true,
		Type:    respType,
		Data:    data,
	})
}

func (s *Server) sendError(reqType, msg string) {
	s.encoder.Encode(Response{
		Success: false,
		Type:    reqType,
		Error:   msg,
	})
}
