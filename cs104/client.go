// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cs104

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/looplab/fsm"

	"github.com/riclolsen/go-iec104/asdu"
	"github.com/riclolsen/go-iec104/clog"
)

// Link states of the controlling station.
const (
	stateClosed     = "closed"
	stateConnecting = "connecting"
	stateIdle       = "idle"     // transport up, data transfer stopped
	stateActive     = "active"   // data transfer active
	stateStopping   = "stopping" // STOPDT activation outstanding
)

// Link state events.
const (
	eventOpen           = "open"
	eventTransportUp    = "transportUp"
	eventStartDtConfirm = "startDtConfirm"
	eventStopDt         = "stopDt"
	eventStopDtConfirm  = "stopDtConfirm"
	eventDisconnect     = "disconnect"
)

// timeoutResolution is the granularity of the t1/t2/t3 supervision checks.
const timeoutResolution = 100 * time.Millisecond

// Client is an IEC 60870-5-104 controlling station.
type Client struct {
	option  ClientOption
	conn    io.ReadWriteCloser
	handler ClientHandlerInterface

	state *fsm.FSM

	// sequence bookkeeping, touched only by runProtocol
	seqNoSend uint16 // V(S) next send sequence number
	ackNoSend uint16 // lowest send sequence number not yet acknowledged
	seqNoRcv  uint16 // V(R) next expected receive sequence number
	ackNoRcv  uint16 // highest receive sequence number acknowledged to the peer
	pending   []seqPending

	// sendPendingCnt mirrors the occupied send window so Send can fail fast
	// without entering the protocol loop.
	sendPendingCnt int32

	// timing marks, touched only by runProtocol
	startDtActiveSendSince time.Time
	stopDtActiveSendSince  time.Time
	testFrAliveSendSince   time.Time
	unAckRcvSince          time.Time
	idleSince              time.Time

	// per connection channels, created at protocol start
	rcvAPDU   chan APDU
	sendRaw   chan []byte
	rcvASDU   chan *asdu.ASDU
	sendASDU  chan []byte
	uFrameCmd chan byte
	connErr   chan error

	rwMux sync.RWMutex

	clog.Clog
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
	connCtx    context.Context
	connCancel context.CancelFunc

	// onConnect fires when data transfer becomes active (STARTDT confirmed).
	onConnect        func(c *Client)
	onConnectionLost func(c *Client, err error)
	onConnectError   func(c *Client, err error)
}

// NewClient creates a new IEC104 controlling station client. The remote
// server endpoint must have been set on the option with AddRemoteServer.
func NewClient(handler ClientHandlerInterface, o *ClientOption) (*Client, error) {
	opt := *o
	if err := opt.config.Valid(); err != nil {
		return nil, err
	}
	if err := opt.params.Valid(); err != nil {
		return nil, err
	}
	if opt.server == nil {
		return nil, errors.New("remote server endpoint not set")
	}

	client := &Client{
		option:           opt,
		handler:          handler,
		Clog:             clog.NewLogger(fmt.Sprintf("cs104 client [%s] => ", opt.server.String())),
		onConnect:        func(*Client) {},
		onConnectionLost: func(*Client, error) {},
		onConnectError:   func(*Client, error) {},
	}
	client.state = fsm.NewFSM(stateClosed,
		fsm.Events{
			{Name: eventOpen, Src: []string{stateClosed}, Dst: stateConnecting},
			{Name: eventTransportUp, Src: []string{stateConnecting}, Dst: stateIdle},
			{Name: eventStartDtConfirm, Src: []string{stateIdle}, Dst: stateActive},
			{Name: eventStopDt, Src: []string{stateActive}, Dst: stateStopping},
			{Name: eventStopDtConfirm, Src: []string{stateStopping}, Dst: stateIdle},
			{Name: eventDisconnect, Src: []string{stateConnecting, stateIdle, stateActive, stateStopping}, Dst: stateClosed},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				client.Debug("link state %s -> %s", e.Src, e.Dst)
			},
		})
	client.Clog.LogMode(false)
	return client, nil
}

// toState fires a link state event, logging rejected transitions.
func (sf *Client) toState(event string) {
	if err := sf.state.Event(context.Background(), event); err != nil {
		sf.Warn("link state event %s rejected in state %s: %v", event, sf.state.Current(), err)
	}
}

// SetLogMode enables or disables logging output.
func (sf *Client) SetLogMode(enable bool) {
	sf.Clog.LogMode(enable)
}

// SetOnConnectHandler sets the handler called when data transfer becomes
// active.
func (sf *Client) SetOnConnectHandler(f func(c *Client)) *Client {
	if f != nil {
		sf.onConnect = f
	}
	return sf
}

// SetConnectionLostHandler sets the handler called when the connection is
// lost.
func (sf *Client) SetConnectionLostHandler(f func(c *Client, err error)) *Client {
	if f != nil {
		sf.onConnectionLost = f
	}
	return sf
}

// SetConnectErrorHandler sets the handler called when a connection attempt
// fails.
func (sf *Client) SetConnectErrorHandler(f func(c *Client, err error)) *Client {
	if f != nil {
		sf.onConnectError = f
	}
	return sf
}

// Start initiates the connection process in the background.
func (sf *Client) Start() error {
	sf.rwMux.Lock()
	if sf.cancel != nil {
		sf.rwMux.Unlock()
		return errors.New("client already started")
	}
	sf.ctx, sf.cancel = context.WithCancel(context.Background())
	sf.rwMux.Unlock()

	go sf.connectionManager()
	return nil
}

// connectionManager handles the connection lifecycle and reconnection.
func (sf *Client) connectionManager() {
	sf.Debug("connection manager started")
	defer sf.Debug("connection manager stopped")

	for {
		select {
		case <-sf.ctx.Done():
			return
		default:
		}

		sf.toState(eventOpen)
		sf.Debug("connecting to %s", sf.option.server)

		conn, err := openEndpoint(sf.option.server, sf.option.config.ConnectTimeout0)
		if err != nil {
			sf.Error("connect to %s failed: %v", sf.option.server, err)
			sf.toState(eventDisconnect)
			sf.onConnectError(sf, err)
			if !sf.waitReconnect() {
				return
			}
			continue
		}

		sf.Debug("connected to %s", sf.option.server)
		sf.rwMux.Lock()
		sf.conn = conn
		sf.rwMux.Unlock()
		sf.toState(eventTransportUp)
		sf.connCtx, sf.connCancel = context.WithCancel(sf.ctx)

		connectionErr := sf.runProtocol()

		sf.connCancel()
		_ = conn.Close() // unblocks the receive loop
		sf.wg.Wait()
		sf.rwMux.Lock()
		sf.conn = nil
		sf.rwMux.Unlock()
		sf.toState(eventDisconnect)
		atomic.StoreInt32(&sf.sendPendingCnt, 0)

		if connectionErr != nil && !errors.Is(connectionErr, context.Canceled) {
			sf.Warn("connection ended with error: %v", connectionErr)
			sf.onConnectionLost(sf, connectionErr)
		} else {
			sf.Debug("connection ended")
			sf.onConnectionLost(sf, nil)
		}

		select {
		case <-sf.ctx.Done():
			return
		default:
			if !sf.waitReconnect() {
				return
			}
		}
	}
}

// waitReconnect sleeps the reconnect interval, honoring Close. It reports
// whether the manager should keep running.
func (sf *Client) waitReconnect() bool {
	if !sf.option.autoReconnect {
		return false
	}
	select {
	case <-time.After(sf.option.reconnectInterval):
		return true
	case <-sf.ctx.Done():
		return false
	}
}

// runProtocol drives one established connection: it starts the transport
// loops, performs the STARTDT handshake and supervises the t1, t2 and t3
// timeouts. It returns the fatal error that ended the connection.
func (sf *Client) runProtocol() error {
	sf.Debug("runProtocol started")
	defer sf.Debug("runProtocol stopped")

	sf.seqNoSend, sf.ackNoSend = 0, 0
	sf.seqNoRcv, sf.ackNoRcv = 0, 0
	sf.pending = nil
	atomic.StoreInt32(&sf.sendPendingCnt, 0)
	sf.startDtActiveSendSince = time.Time{}
	sf.stopDtActiveSendSince = time.Time{}
	sf.testFrAliveSendSince = time.Time{}
	sf.unAckRcvSince = time.Time{}
	sf.idleSince = time.Now()

	sf.rcvAPDU = make(chan APDU, 20)
	sf.sendRaw = make(chan []byte, 20)
	sf.rcvASDU = make(chan *asdu.ASDU, 50)
	sf.sendASDU = make(chan []byte, 20)
	sf.uFrameCmd = make(chan byte, 4)
	sf.connErr = make(chan error, 2)

	sf.wg.Add(3)
	go sf.recvLoop()
	go sf.sendLoop()
	go sf.handlerLoop()

	// activate data transfer immediately
	sf.startDtActiveSendSince = time.Now()
	sf.sendUFrame(uStartDtActive)

	checkTicker := time.NewTicker(timeoutResolution)
	defer checkTicker.Stop()

	cfg := &sf.option.config
	for {
		select {
		case <-sf.connCtx.Done():
			select {
			case err := <-sf.connErr:
				return err
			default:
				return sf.connCtx.Err()
			}

		case err := <-sf.connErr:
			return err

		case <-checkTicker.C:
			now := time.Now()
			if !sf.startDtActiveSendSince.IsZero() && now.Sub(sf.startDtActiveSendSince) >= cfg.SendUnAckTimeout1 {
				sf.Error("t1 expired waiting for STARTDT confirmation")
				return ErrTimeoutT1
			}
			if !sf.stopDtActiveSendSince.IsZero() && now.Sub(sf.stopDtActiveSendSince) >= cfg.SendUnAckTimeout1 {
				sf.Error("t1 expired waiting for STOPDT confirmation")
				return ErrTimeoutT1
			}
			if !sf.testFrAliveSendSince.IsZero() && now.Sub(sf.testFrAliveSendSince) >= cfg.SendUnAckTimeout1 {
				sf.Error("t1 expired waiting for TESTFR confirmation")
				return ErrTimeoutT1
			}
			if len(sf.pending) > 0 && now.Sub(sf.pending[0].sendTime) >= cfg.SendUnAckTimeout1 {
				sf.Error("t1 expired waiting for acknowledge of I frame %d", sf.pending[0].seq)
				return ErrTimeoutT1
			}
			if !sf.unAckRcvSince.IsZero() && now.Sub(sf.unAckRcvSince) >= cfg.RecvUnAckTimeout2 {
				sf.sendSFrame()
			}
			if sf.testFrAliveSendSince.IsZero() && now.Sub(sf.idleSince) >= cfg.IdleTimeout3 {
				sf.testFrAliveSendSince = now
				sf.sendUFrame(uTestFrActive)
			}

		case apdu := <-sf.rcvAPDU:
			if err := sf.handleAPDU(apdu); err != nil {
				return err
			}

		case which := <-sf.uFrameCmd:
			sf.handleUFrameCmd(which)

		case raw := <-sf.sendASDU:
			if sf.state.Current() != stateActive {
				atomic.AddInt32(&sf.sendPendingCnt, -1)
				sf.Warn("dropping queued ASDU, data transfer no longer active")
				continue
			}
			sf.sendIFrame(raw)
		}
	}
}

// handleUFrameCmd processes a STARTDT or STOPDT request from the API.
func (sf *Client) handleUFrameCmd(which byte) {
	switch which {
	case uStartDtActive:
		if sf.state.Current() != stateIdle {
			sf.Warn("STARTDT request ignored in state %s", sf.state.Current())
			return
		}
		sf.startDtActiveSendSince = time.Now()
		sf.sendUFrame(uStartDtActive)
	case uStopDtActive:
		if sf.state.Current() != stateActive {
			sf.Warn("STOPDT request ignored in state %s", sf.state.Current())
			return
		}
		sf.toState(eventStopDt)
		sf.stopDtActiveSendSince = time.Now()
		sf.sendUFrame(uStopDtActive)
	}
}

// handleAPDU processes one received APDU. A non nil return is fatal to the
// connection.
func (sf *Client) handleAPDU(apdu APDU) error {
	sf.idleSince = time.Now()

	switch ctl := apdu.parse().(type) {
	case iAPCI:
		sf.Debug("RX %v", ctl)
		if sf.state.Current() != stateActive {
			sf.Error("I frame received while data transfer not active")
			return ErrUnexpectedFrame
		}
		if err := sf.updateAckNoOut(ctl.rcvSN); err != nil {
			return err
		}
		if ctl.sendSN != sf.seqNoRcv {
			sf.Error("I frame sequence mismatch: got %d, expected %d", ctl.sendSN, sf.seqNoRcv)
			return ErrSeqNoMismatch
		}
		sf.seqNoRcv = (sf.seqNoRcv + 1) & seqNoMask
		if sf.unAckRcvSince.IsZero() {
			sf.unAckRcvSince = time.Now()
		}
		if seqNoCount(sf.ackNoRcv, sf.seqNoRcv) >= sf.option.config.RecvUnAckLimitW {
			sf.sendSFrame()
		}

		asduPack := asdu.NewEmptyASDU(&sf.option.params)
		if err := asduPack.UnmarshalBinary(apdu.ASDU); err != nil {
			sf.Warn("undecodable ASDU discarded: %v", err)
			return nil
		}
		select {
		case sf.rcvASDU <- asduPack:
		case <-sf.connCtx.Done():
		default:
			sf.Warn("receive buffer full, ASDU discarded: %s", asduPack.Identifier)
		}

	case sAPCI:
		sf.Debug("RX %v", ctl)
		return sf.updateAckNoOut(ctl.rcvSN)

	case uAPCI:
		sf.Debug("RX %v", ctl)
		switch ctl.function {
		case uStartDtConfirm:
			if sf.startDtActiveSendSince.IsZero() {
				sf.Warn("unsolicited STARTDT confirmation")
			}
			sf.startDtActiveSendSince = time.Time{}
			sf.toState(eventStartDtConfirm)
			sf.onConnect(sf)
		case uStopDtConfirm:
			sf.stopDtActiveSendSince = time.Time{}
			sf.toState(eventStopDtConfirm)
		case uTestFrActive:
			sf.sendUFrame(uTestFrConfirm)
		case uTestFrConfirm:
			sf.testFrAliveSendSince = time.Time{}
		default:
			// STARTDT/STOPDT activations belong to the controlling station
			sf.Error("unexpected U frame %v from controlled station", ctl)
			return ErrUnexpectedFrame
		}
	}
	return nil
}

// seqNoCount returns how many sequence numbers lie in [nextAckNo, nextSeqNo)
// modulo 32768.
func seqNoCount(nextAckNo, nextSeqNo uint16) uint16 {
	if nextAckNo > nextSeqNo {
		nextSeqNo += 32768
	}
	return nextSeqNo - nextAckNo
}

// updateAckNoOut advances the send window to the peer acknowledge ackNo. An
// acknowledge outside [ackNoSend, seqNoSend] is fatal.
func (sf *Client) updateAckNoOut(ackNo uint16) error {
	if ackNo == sf.ackNoSend {
		return nil
	}
	if seqNoCount(sf.ackNoSend, ackNo) > seqNoCount(sf.ackNoSend, sf.seqNoSend) {
		sf.Error("acknowledge %d outside send window [%d, %d]", ackNo, sf.ackNoSend, sf.seqNoSend)
		return ErrAckOutOfRange
	}
	for len(sf.pending) > 0 && seqNoCount(sf.pending[0].seq, ackNo) > 0 {
		sf.pending = sf.pending[1:]
		atomic.AddInt32(&sf.sendPendingCnt, -1)
	}
	sf.ackNoSend = ackNo
	return nil
}

// sendIFrame transmits one marshaled ASDU as the next I frame, piggybacking
// the current receive acknowledge.
func (sf *Client) sendIFrame(asdus []byte) {
	seqNo := sf.seqNoSend
	iFrame, err := newIFrame(seqNo, sf.seqNoRcv, asdus)
	if err != nil {
		atomic.AddInt32(&sf.sendPendingCnt, -1)
		sf.Error("I frame build failed: %v", err)
		return
	}
	sf.ackNoRcv = sf.seqNoRcv
	sf.unAckRcvSince = time.Time{}
	sf.seqNoSend = (seqNo + 1) & seqNoMask
	sf.pending = append(sf.pending, seqPending{seqNo, time.Now()})

	sf.Debug("TX %v", iAPCI{sendSN: seqNo, rcvSN: sf.ackNoRcv})
	sf.sendRawFrame(iFrame)
}

// sendSFrame acknowledges everything received so far.
func (sf *Client) sendSFrame() {
	sf.ackNoRcv = sf.seqNoRcv
	sf.unAckRcvSince = time.Time{}
	sf.Debug("TX %v", sAPCI{rcvSN: sf.ackNoRcv})
	sf.sendRawFrame(newSFrame(sf.ackNoRcv))
}

// sendUFrame transmits a U frame with the given function bit.
func (sf *Client) sendUFrame(which byte) {
	sf.Debug("TX %v", uAPCI{function: which})
	sf.sendRawFrame(newUFrame(which))
}

// sendRawFrame hands raw octets to the send loop. Called only from the
// protocol loop.
func (sf *Client) sendRawFrame(raw []byte) {
	sf.idleSince = time.Now()
	select {
	case sf.sendRaw <- raw:
	case <-sf.connCtx.Done():
	}
}

// recvLoop reads APDUs from the transport and feeds the protocol loop.
func (sf *Client) recvLoop() {
	sf.Debug("recvLoop started")
	defer func() {
		sf.connCancel()
		sf.wg.Done()
		sf.Debug("recvLoop stopped")
	}()

	head := make([]byte, APDUSizeMax)
	for {
		apdu, err := readAPDU(sf.conn, head)
		if err != nil {
			if errors.Is(err, ErrInvalidStartFrame) || errors.Is(err, ErrAPDULengthOutOfRange) {
				// the octet stream is poisoned, kill the connection
				sf.Error("frame error: %v", err)
				sf.connErr <- err
				return
			}
			select {
			case <-sf.connCtx.Done():
			default:
				sf.Debug("transport read failed: %v", err)
			}
			return
		}
		select {
		case sf.rcvAPDU <- apdu:
		case <-sf.connCtx.Done():
			return
		}
	}
}

// sendLoop writes raw frames to the transport.
func (sf *Client) sendLoop() {
	sf.Debug("sendLoop started")
	defer func() {
		sf.connCancel()
		sf.wg.Done()
		sf.Debug("sendLoop stopped")
	}()

	for {
		select {
		case <-sf.connCtx.Done():
			return
		case raw := <-sf.sendRaw:
			sf.Debug("TX raw [% X]", raw)
			for wrCnt := 0; len(raw) > wrCnt; {
				n, err := sf.conn.Write(raw[wrCnt:])
				if err != nil {
					sf.Error("transport write failed: %v", err)
					return
				}
				wrCnt += n
			}
		}
	}
}

// handlerLoop dispatches decoded ASDUs to the user handler.
func (sf *Client) handlerLoop() {
	sf.Debug("handlerLoop started")
	defer func() {
		sf.wg.Done()
		sf.Debug("handlerLoop stopped")
	}()

	for {
		select {
		case <-sf.connCtx.Done():
			return
		case asduPack := <-sf.rcvASDU:
			if err := sf.callHandler(asduPack); err != nil {
				sf.Warn("handler error: %v (ASDU: %s)", err, asduPack.Identifier)
			}
		}
	}
}

// callHandler routes one ASDU to the user handler, recovering panics so a
// misbehaving handler cannot kill the protocol loops.
func (sf *Client) callHandler(asduPack *asdu.ASDU) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic recovered in handler: %v", r)
			sf.Critical("%v", err)
		}
	}()

	if handlerErr := sf.handler.ASDUHandlerAll(sf, asduPack); handlerErr != nil {
		sf.Warn("error in ASDUHandlerAll: %v", handlerErr)
	}

	cause := asduPack.Coa.Cause
	typeID := asduPack.Type

	switch {
	case cause == asdu.InterrogatedByStation ||
		(cause >= asdu.InterrogatedByGroup1 && cause <= asdu.InterrogatedByGroup16):
		if typeID >= asdu.M_SP_NA_1 && typeID < asdu.C_SC_NA_1 {
			err = sf.handler.InterrogationHandler(sf, asduPack)
		} else if typeID == asdu.C_IC_NA_1 {
			// activation confirmation or termination of the command itself
			err = sf.handler.InterrogationHandler(sf, asduPack)
		} else {
			sf.Warn("unexpected type %s for interrogation cause %d", typeID, cause)
			err = sf.handler.ASDUHandler(sf, asduPack)
		}

	case cause == asdu.RequestByGeneralCounter ||
		(cause >= asdu.RequestByGroup1Counter && cause <= asdu.RequestByGroup4Counter):
		if typeID == asdu.M_IT_NA_1 || typeID == asdu.C_CI_NA_1 {
			err = sf.handler.CounterInterrogationHandler(sf, asduPack)
		} else {
			sf.Warn("unexpected type %s for counter interrogation cause %d", typeID, cause)
			err = sf.handler.ASDUHandler(sf, asduPack)
		}

	case typeID == asdu.C_IC_NA_1:
		err = sf.handler.InterrogationHandler(sf, asduPack)

	case typeID == asdu.C_CI_NA_1:
		err = sf.handler.CounterInterrogationHandler(sf, asduPack)

	case typeID == asdu.C_RD_NA_1:
		err = sf.handler.ReadHandler(sf, asduPack)

	case typeID == asdu.C_TS_NA_1 || typeID == asdu.C_TS_TA_1:
		err = sf.handler.TestCommandHandler(sf, asduPack)

	case typeID == asdu.C_CS_NA_1:
		err = sf.handler.ClockSyncHandler(sf, asduPack)

	case typeID == asdu.C_RP_NA_1:
		err = sf.handler.ResetProcessHandler(sf, asduPack)

	case typeID == asdu.C_CD_NA_1:
		err = sf.handler.DelayAcquisitionHandler(sf, asduPack)

	default:
		err = sf.handler.ASDUHandler(sf, asduPack)
	}
	return err
}

// IsConnected reports whether the transport is established.
func (sf *Client) IsConnected() bool {
	switch sf.state.Current() {
	case stateIdle, stateActive, stateStopping:
		return true
	}
	return false
}

// IsActive reports whether data transfer is active.
func (sf *Client) IsActive() bool {
	return sf.state.Current() == stateActive
}

// Close disconnects the client and stops all background goroutines.
func (sf *Client) Close() error {
	sf.rwMux.Lock()
	defer sf.rwMux.Unlock()
	if sf.cancel == nil {
		return ErrUseClosedConnection
	}
	sf.Debug("close requested")
	sf.cancel()
	sf.cancel = nil
	return nil
}

// SendStartDt requests activation of data transfer. The handshake completes
// asynchronously; the onConnect handler fires on confirmation.
func (sf *Client) SendStartDt() error {
	return sf.queueUFrameCmd(uStartDtActive)
}

// SendStopDt requests deactivation of data transfer.
func (sf *Client) SendStopDt() error {
	return sf.queueUFrameCmd(uStopDtActive)
}

func (sf *Client) queueUFrameCmd(which byte) error {
	if !sf.IsConnected() {
		return ErrUseClosedConnection
	}
	select {
	case sf.uFrameCmd <- which:
		return nil
	default:
		return ErrBufferFulled
	}
}

// Send queues an ASDU for transmission as an I frame. It fails fast with
// ErrSendWindowFull when k I frames are outstanding.
func (sf *Client) Send(a *asdu.ASDU) error {
	if !sf.IsConnected() {
		return ErrUseClosedConnection
	}
	if !sf.IsActive() {
		return ErrNotActive
	}
	data, err := a.MarshalBinary()
	if err != nil {
		return err
	}

	// reserve a send window slot
	for {
		cnt := atomic.LoadInt32(&sf.sendPendingCnt)
		if cnt >= int32(sf.option.config.SendUnAckLimitK) {
			return ErrSendWindowFull
		}
		if atomic.CompareAndSwapInt32(&sf.sendPendingCnt, cnt, cnt+1) {
			break
		}
	}

	select {
	case sf.sendASDU <- data:
		return nil
	default:
		atomic.AddInt32(&sf.sendPendingCnt, -1)
		return ErrBufferFulled
	}
}

// Params returns the ASDU parameters of the connection.
func (sf *Client) Params() *asdu.Params {
	return &sf.option.params
}

// UnderlyingConn returns the transport of the current connection.
func (sf *Client) UnderlyingConn() io.ReadWriteCloser {
	sf.rwMux.RLock()
	defer sf.rwMux.RUnlock()
	return sf.conn
}

// InterrogationCmd sends a C_IC_NA_1 interrogation command.
func (sf *Client) InterrogationCmd(coa asdu.CauseOfTransmission, ca asdu.CommonAddr, qoi asdu.QualifierOfInterrogation) error {
	return asdu.InterrogationCmd(sf, coa, ca, qoi)
}

// CounterInterrogationCmd sends a C_CI_NA_1 counter interrogation command.
func (sf *Client) CounterInterrogationCmd(coa asdu.CauseOfTransmission, ca asdu.CommonAddr, qcc asdu.QualifierCountCall) error {
	return asdu.CounterInterrogationCmd(sf, coa, ca, qcc)
}

// ReadCmd sends a C_RD_NA_1 read command.
func (sf *Client) ReadCmd(coa asdu.CauseOfTransmission, ca asdu.CommonAddr, ioa asdu.InfoObjAddr) error {
	return asdu.ReadCmd(sf, coa, ca, ioa)
}

// ClockSynchronizationCmd sends a C_CS_NA_1 clock synchronization command.
func (sf *Client) ClockSynchronizationCmd(coa asdu.CauseOfTransmission, ca asdu.CommonAddr, t time.Time) error {
	return asdu.ClockSynchronizationCmd(sf, coa, ca, t)
}

// ResetProcessCmd sends a C_RP_NA_1 reset process command.
func (sf *Client) ResetProcessCmd(coa asdu.CauseOfTransmission, ca asdu.CommonAddr, qrp asdu.QualifierOfResetProcessCmd) error {
	return asdu.ResetProcessCmd(sf, coa, ca, qrp)
}

// DelayAcquireCommand sends a C_CD_NA_1 delay acquisition command.
func (sf *Client) DelayAcquireCommand(coa asdu.CauseOfTransmission, ca asdu.CommonAddr, msec uint16) error {
	return asdu.DelayAcquireCommand(sf, coa, ca, msec)
}

// TestCommand sends a C_TS_NA_1 test command.
func (sf *Client) TestCommand(coa asdu.CauseOfTransmission, ca asdu.CommonAddr) error {
	return asdu.TestCommand(sf, coa, ca)
}
