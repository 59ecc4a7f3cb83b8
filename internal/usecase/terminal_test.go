package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"airops-service/internal/domain/entity"
	"airops-service/internal/domain/repository/mocks"
	"airops-service/internal/infrastructure/router"
	"airops-service/internal/infrastructure/seed"
	"airops-service/internal/interface/repository"
	"airops-service/internal/usecase"
	"airops-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testMessageID = "<20261018.1@mg.airops.test>"

type harness struct {
	store      *repository.SessionStore
	mailer     *mocks.MockMailer
	dispatcher *usecase.EmailDispatcher
	terminal   *usecase.Terminal
	session    *usecase.Session
}

func newHarness(t *testing.T, result entity.SendResult) *harness {
	t.Helper()

	store := repository.NewSessionStore(seed.Default().Flights)
	mailer := &mocks.MockMailer{}
	mailer.On("Send", mock.Anything, mock.Anything).Return(result).Maybe()

	log := logger.NewNopLogger()
	dispatcher := usecase.NewEmailDispatcher(context.Background(), mailer, store.SentEmails(), store.Logs(), nil, log, time.Second)

	r := router.NewCommandRouter(log)
	usecase.RegisterCommands(r, usecase.CommandDeps{
		Flights:    store.Flights(),
		Passengers: store.Passengers(),
		SentEmails: store.SentEmails(),
		Logs:       store.Logs(),
		Dispatcher: dispatcher,
		Logger:     log,
		BagDelay:   10 * time.Millisecond,
	})

	terminal := usecase.NewTerminal(r, nil, log)
	t.Cleanup(dispatcher.Wait)

	return &harness{
		store:      store,
		mailer:     mailer,
		dispatcher: dispatcher,
		terminal:   terminal,
		session:    terminal.OpenSession(),
	}
}

func newSentHarness(t *testing.T) *harness {
	return newHarness(t, entity.SendResult{Success: true, MessageID: testMessageID})
}

func (h *harness) run(lines ...string) []string {
	var out []string
	for _, line := range lines {
		out = h.terminal.Run(context.Background(), h.session, line)
	}
	return out
}

// book runs the standard RIX-JFK connection booking and returns the PNR
func (h *harness) book(t *testing.T, commit string) (string, []string) {
	t.Helper()

	out := h.run("ANRIXJFK", "SS1Y1", "NM1DOE/JOHN MR", "APE-EMAIL@X.COM", "FXP", commit)
	for _, line := range out {
		if pnr, ok := strings.CutPrefix(line, "END OF TRANSACTION COMPLETE - "); ok {
			return pnr, out
		}
	}
	t.Fatalf("no commit line in %v", out)
	return "", nil
}

func indexOf(lines []string, want string) int {
	for i, line := range lines {
		if line == want {
			return i
		}
	}
	return -1
}

func TestTerminal_BookingScenario(t *testing.T) {
	h := newSentHarness(t)

	out := h.run("ANRIXJFK")
	require.Len(t, out, 11)
	assert.Equal(t, "> ANRIXJFK", out[0])
	assert.Equal(t, "** AVAILABILITY RIX-JFK **", out[1])
	assert.Contains(t, out[2], "BT 211")
	assert.Contains(t, out[3], "LH 400")
	assert.Contains(t, out[3], "CNX 2H00")

	out = h.run("SS1Y1")
	require.Len(t, out, 3)
	assert.Contains(t, out[1], "BT 211")
	assert.Contains(t, out[1], "RIXFRA HK1")
	assert.Contains(t, out[2], "LH 400")
	assert.True(t, strings.HasSuffix(out[2], "CNX"))

	out = h.run("NM1DOE/JOHN MR")
	assert.Equal(t, []string{"> NM1DOE/JOHN MR", "  1.DOE/JOHN MR"}, out)

	out = h.run("APE-EMAIL@X.COM")
	assert.Equal(t, []string{"> APE-EMAIL@X.COM", "  1 APE EMAIL@X.COM"}, out)

	out = h.run("FXP")
	assert.Equal(t, "PRICED FARE - 1 PAX 2 SEG", out[1])
	assert.Contains(t, out, "TOTAL  EUR     45.40")
	assert.Equal(t, "TST STORED", out[len(out)-1])

	out = h.run("ER")
	last := out[len(out)-2]
	pnr, ok := strings.CutPrefix(last, "END OF TRANSACTION COMPLETE - ")
	require.True(t, ok, "unexpected commit output %v", out)
	assert.Len(t, pnr, 6)
	assert.Equal(t, "RP/"+pnr, out[1])
	assert.Contains(t, out, "TST STORED EUR 45.40")
	assert.Contains(t, out, "  4 APE EMAIL@X.COM")
	assert.Equal(t, "CONFIRMATION EMAIL QUEUED TO EMAIL@X.COM", out[len(out)-1])

	h.dispatcher.Wait()

	transcript := h.session.Transcript()
	queued := indexOf(transcript, "CONFIRMATION EMAIL QUEUED TO EMAIL@X.COM")
	sent := indexOf(transcript, "EMAIL SENT TO EMAIL@X.COM - "+testMessageID)
	require.NotEqual(t, -1, queued)
	require.NotEqual(t, -1, sent)
	assert.Greater(t, sent, queued)

	assert.Equal(t, entity.StateEmpty, h.session.Draft().State())

	rows, err := h.store.Passengers().FindByPNR(context.Background(), pnr)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.ElementsMatch(t, []string{"FL001", "FL007"}, []string{rows[0].FlightID, rows[1].FlightID})

	assert.Eventually(t, func() bool {
		rows, err := h.store.Passengers().FindByPNR(context.Background(), pnr)
		if err != nil {
			return false
		}
		for _, row := range rows {
			if row.BagCount != 1 || row.BagStatus != entity.BagStatusBooked {
				return false
			}
		}
		return true
	}, time.Second, 10*time.Millisecond)

	record, err := h.store.SentEmails().FindLastByPNR(context.Background(), pnr)
	require.NoError(t, err)
	assert.Equal(t, "EMAIL@X.COM", record.To)
	assert.Equal(t, testMessageID, record.MessageID)

	emails := h.mailer.Sent()
	require.Len(t, emails, 1)
	assert.Equal(t, "Booking confirmation "+pnr, emails[0].Subject)
	assert.Contains(t, emails[0].Text, pnr)
}

func TestTerminal_ETCommitsWithoutRedisplay(t *testing.T) {
	h := newSentHarness(t)

	pnr, out := h.book(t, "ET")
	assert.Equal(t, []string{
		"> ET",
		"END OF TRANSACTION COMPLETE - " + pnr,
		"CONFIRMATION EMAIL QUEUED TO EMAIL@X.COM",
	}, out)
}

func TestTerminal_CommitBagCountIncludesBagServices(t *testing.T) {
	h := newSentHarness(t)

	out := h.run("AN RIX/TLL", "SS2Y1", "NM2DOE/JOHN MR/JANE MRS", "SR XBAG/P2", "ET")
	pnr, ok := strings.CutPrefix(out[1], "END OF TRANSACTION COMPLETE - ")
	require.True(t, ok, "unexpected commit output %v", out)

	assert.Eventually(t, func() bool {
		rows, _ := h.store.Passengers().FindByPNR(context.Background(), pnr)
		bags := map[string]int{}
		for _, row := range rows {
			bags[row.FirstName] = row.BagCount
		}
		return len(rows) == 2 && bags["JOHN"] == 1 && bags["JANE"] == 2
	}, time.Second, 10*time.Millisecond)
}

func TestTerminal_CommitRequiresItinerary(t *testing.T) {
	h := newSentHarness(t)

	out := h.run("ER")
	assert.Equal(t, []string{"> ER", entity.ErrItineraryIncomplete.Error()}, out)

	out = h.run("NM1DOE/JOHN MR", "ET")
	assert.Equal(t, entity.ErrItineraryIncomplete.Error(), out[1])
	assert.Len(t, h.session.Draft().Passengers, 1)
}

func TestTerminal_GrammarErrors(t *testing.T) {
	h := newSentHarness(t)

	tests := []struct {
		line string
		want string
	}{
		{line: "XYZ", want: usecase.ErrUnknownCommand.Error()},
		{line: "ER NOW", want: usecase.ErrInvalidFormat.Error()},
		{line: "FXP 2", want: usecase.ErrInvalidFormat.Error()},
		{line: "AN RIXX", want: usecase.ErrInvalidFormat.Error()},
		{line: "SS1Y1", want: "NO AVAILABILITY DISPLAYED - USE AN FIRST"},
		{line: "NM1DOE", want: "CHECK NAME FORMAT - SURNAME/FIRSTNAME TITLE"},
		{line: "NM2DOE/JOHN", want: "NUMBER OF NAMES DOES NOT MATCH"},
		{line: "AP", want: usecase.ErrInvalidFormat.Error()},
		{line: "SR ZZZZ", want: "SSR CODE NOT RECOGNISED"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			out := h.run(tt.line)
			assert.Equal(t, []string{"> " + tt.line, tt.want}, out)
		})
	}

	assert.Equal(t, entity.StateEmpty, h.session.Draft().State())
}

func TestTerminal_LowercaseInputIsNormalised(t *testing.T) {
	h := newSentHarness(t)

	out := h.run("  an rix  ")
	assert.Equal(t, "> AN RIX", out[0])
	assert.Equal(t, "** AVAILABILITY DEPARTURES RIX **", out[1])
}

func TestTerminal_SellValidation(t *testing.T) {
	h := newSentHarness(t)
	h.run("ANRIXJFK")

	out := h.run("SS1Y6")
	assert.Equal(t, "LINE NUMBER NOT IN AVAILABILITY", out[1])

	out = h.run("SS0Y1")
	assert.Equal(t, "INVALID NUMBER OF SEATS", out[1])

	out = h.run("SS1Y5")
	require.Len(t, out, 2)
	assert.Contains(t, out[1], "BT 671")
	assert.Len(t, h.session.Draft().Segments, 1)

	out = h.run("ANXXXYYY")
	assert.Equal(t, []string{"> ANXXXYYY", "** AVAILABILITY XXX-YYY **", "NO FLIGHTS FOUND"}, out)

	// an empty search still replaces the last one
	out = h.run("SS1Y1")
	assert.Equal(t, "LINE NUMBER NOT IN AVAILABILITY", out[1])
}

func TestTerminal_StaffNames(t *testing.T) {
	h := newSentHarness(t)

	out := h.run("SD1DOE/JOHN MR/E123456")
	assert.Equal(t, "  1.DOE/JOHN MR (STAFF DUTY E123456)", out[1])

	out = h.run("SSBY1ROE/JANE MS")
	assert.Regexp(t, `^  2\.ROE/JANE MS \(STAFF SBY E\d{6}\)$`, out[1])

	draft := h.session.Draft()
	require.Len(t, draft.Passengers, 2)
	assert.Equal(t, entity.PassengerStaffDuty, draft.Passengers[0].Type)
	assert.Equal(t, entity.PassengerStaffSBY, draft.Passengers[1].Type)
}

func TestTerminal_ServicePricingAndTicketing(t *testing.T) {
	h := newSentHarness(t)
	h.run("ANRIXJFK", "SS1Y1", "NM1DOE/JOHN MR")

	out := h.run("FXG")
	assert.Equal(t, entity.ErrFareNotStored.Error(), out[1])

	out = h.run("TQT")
	assert.Equal(t, entity.ErrFareNotStored.Error(), out[1])

	h.run("FXP")
	out = h.run("FXG")
	assert.Equal(t, entity.ErrNoServices.Error(), out[1])

	out = h.run("SR XBAG/P2")
	assert.Equal(t, "PASSENGER ASSOCIATION NOT IN PNR", out[1])
	out = h.run("SR XBAG/S3")
	assert.Equal(t, "SEGMENT ASSOCIATION NOT IN PNR", out[1])

	out = h.run("SR XBAG/P1/S1")
	assert.Equal(t, "  1 SSR XBAG HK1 EXTRA CHECKED BAG 23KG EUR 45.00 /P1 /S1", out[1])
	h.run("SR VGML")

	for _, line := range []string{"TMI/FP-O", "TTM/", "TQM"} {
		out = h.run(line)
		assert.Equal(t, entity.ErrAncillaryNotPriced.Error(), out[1], line)
	}

	out = h.run("FXH")
	assert.Equal(t, "TOTAL SERVICES EUR 45.00", out[len(out)-1])
	assert.False(t, h.session.Draft().AncillaryPriced())

	out = h.run("FXG")
	assert.Equal(t, "SERVICES PRICED - TSM STORED", out[len(out)-1])
	assert.Contains(t, out, "TOTAL SERVICES EUR 45.00")

	out = h.run("TMI/FP-O/1")
	assert.Equal(t, "FP CASH - ORIGINAL FORM OF PAYMENT KEPT", out[1])

	out = h.run("TMI/FP-CCVI4111")
	assert.Equal(t, "FP CCVI4111 - FORM OF PAYMENT UPDATED", out[1])

	out = h.run("TTM/")
	require.Len(t, out, 3)
	assert.True(t, strings.HasPrefix(out[1], "EMD 657-"), out[1])
	assert.True(t, strings.HasSuffix(out[1], "XBAG EUR 45.00"), out[1])
	assert.Equal(t, "1 EMD REISSUED - FP CCVI4111", out[2])

	out = h.run("TKOK")
	assert.Equal(t, []string{"> TKOK", "TK OK"}, out)

	out = h.run("RP")
	assert.Contains(t, out, "FP CCVI4111")
	assert.Contains(t, out, "TK OK")
	assert.Contains(t, out, "TSM STORED EUR 45.00")
}

func TestTerminal_FareQuoteDoesNotStore(t *testing.T) {
	h := newSentHarness(t)
	h.run("ANRIXJFK", "SS1Y5", "NM1DOE/JOHN MR")

	out := h.run("FXX")
	assert.Equal(t, "PRICED FARE - 1 PAX 1 SEG", out[1])
	assert.NotContains(t, out, "TST STORED")
	assert.False(t, h.session.Draft().TSTStored())

	out = h.run("FXK")
	assert.Equal(t, "CHARGEABLE SERVICES", out[1])
	assert.True(t, strings.HasPrefix(out[len(out)-1], "XWGT-KG<N>"))
}

func TestTerminal_RetrieveBooking(t *testing.T) {
	h := newSentHarness(t)
	pnr, _ := h.book(t, "ET")

	out := h.run("RT" + pnr)
	require.Len(t, out, 6)
	assert.Equal(t, "RP/"+pnr, out[1])
	assert.Equal(t, "  1.DOE/JOHN MR", out[2])
	assert.Contains(t, out[3], "BT 211")
	assert.Contains(t, out[4], "LH 400")
	assert.True(t, strings.HasPrefix(out[5], "BAGS DOE/JOHN "))

	out = h.run("RT ZZZZZZ")
	assert.Equal(t, []string{"> RT ZZZZZZ", "PNR NOT FOUND"}, out)

	out = h.run("RT")
	assert.Equal(t, []string{"> RT", "NO ACTIVE PNR"}, out)
}

func TestTerminal_Resend(t *testing.T) {
	h := newSentHarness(t)

	out := h.run("RESEND ABC123")
	assert.Equal(t, "NO CONFIRMATION EMAIL ON FILE", out[1])

	pnr, _ := h.book(t, "ET")
	h.dispatcher.Wait()

	out = h.run("RESEND " + pnr)
	assert.Equal(t, []string{"> RESEND " + pnr, "CONFIRMATION RESEND QUEUED TO EMAIL@X.COM"}, out)

	h.dispatcher.Wait()
	emails := h.mailer.Sent()
	require.Len(t, emails, 2)
	assert.Equal(t, emails[0].Subject, emails[1].Subject)
	assert.Equal(t, "EMAIL SENT TO EMAIL@X.COM - "+testMessageID, h.session.Transcript()[len(h.session.Transcript())-1])
}

func TestTerminal_TestEmail(t *testing.T) {
	h := newSentHarness(t)

	out := h.run("TESTEMAIL NOPE")
	assert.Equal(t, usecase.ErrInvalidFormat.Error(), out[1])

	out = h.run("TESTEMAIL OPS@AIROPS.TEST")
	assert.Equal(t, []string{"> TESTEMAIL OPS@AIROPS.TEST", "TEST EMAIL QUEUED TO OPS@AIROPS.TEST"}, out)

	h.dispatcher.Wait()
	emails := h.mailer.Sent()
	require.Len(t, emails, 1)
	assert.Equal(t, "Test message", emails[0].Subject)
	assert.Contains(t, h.session.Transcript(), "EMAIL SENT TO OPS@AIROPS.TEST - "+testMessageID)
}

func TestTerminal_RejectsMalformedAddresses(t *testing.T) {
	h := newSentHarness(t)

	for _, line := range []string{
		"TESTEMAIL OPS@AIROPS.TEST\r\nBCC: ALL@AIROPS.TEST",
		"TESTEMAIL OPS@AIROPS.TEST,ALL@AIROPS.TEST",
		"APE-EMAIL@X.COM\nBCC:ALL@X.COM",
		"APE-EMAIL",
	} {
		out := h.run(line)
		require.Len(t, out, 2, line)
		assert.Equal(t, usecase.ErrInvalidFormat.Error(), out[1], line)
	}
	assert.Empty(t, h.session.Draft().Contacts)

	h.dispatcher.Wait()
	assert.Empty(t, h.mailer.Sent())
}

type explodingHandler struct{}

func (explodingHandler) Rules() []usecase.Rule {
	return []usecase.Rule{{Verb: "BOOM", NoArgs: true}}
}

func (explodingHandler) Handle(ctx context.Context, s *usecase.Session, cmd usecase.Command) usecase.Output {
	panic("handler bug")
}

func TestTerminal_HandlerPanicKeepsSessionUsable(t *testing.T) {
	log := logger.NewNopLogger()
	r := router.NewCommandRouter(log)
	r.Register(explodingHandler{})
	terminal := usecase.NewTerminal(r, nil, log)
	session := terminal.OpenSession()

	done := make(chan []string)
	go func() {
		terminal.Run(context.Background(), session, "BOOM")
		done <- terminal.Run(context.Background(), session, "BOOM")
	}()

	select {
	case out := <-done:
		assert.Equal(t, []string{"> BOOM", usecase.ErrSystem.Error()}, out)
	case <-time.After(time.Second):
		t.Fatal("session lock was not released after a handler panic")
	}
	assert.Len(t, session.Transcript(), 4)
}

func TestTerminal_EmailFailureIsReported(t *testing.T) {
	h := newHarness(t, entity.SendResult{Reason: entity.ReasonMissingConfig, Error: "mailgun api key not configured"})

	pnr, out := h.book(t, "ET")
	assert.Contains(t, out, "END OF TRANSACTION COMPLETE - "+pnr)

	h.dispatcher.Wait()
	assert.Contains(t, h.session.Transcript(), "EMAIL FAILED TO EMAIL@X.COM - MISSING_CONFIG mailgun api key not configured")

	_, err := h.store.SentEmails().FindLastByPNR(context.Background(), pnr)
	assert.Error(t, err)

	rows, err := h.store.Passengers().FindByPNR(context.Background(), pnr)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestTerminal_ClearAndHelp(t *testing.T) {
	h := newSentHarness(t)

	h.run("ANRIX")
	require.NotEmpty(t, h.session.Transcript())

	out := h.run("CL")
	assert.Empty(t, out)
	assert.Empty(t, h.session.Transcript())

	out = h.run("HELP")
	assert.Equal(t, "AVAILABLE COMMANDS", out[1])
	assert.True(t, strings.HasPrefix(out[2], "AN"))
	assert.True(t, strings.HasPrefix(out[len(out)-1], "HELP"))
	assert.Len(t, h.session.Transcript(), len(out))
}

func TestTerminal_Sessions(t *testing.T) {
	h := newSentHarness(t)

	_, err := h.terminal.Execute(context.Background(), "missing", "AN")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)

	out, err := h.terminal.Execute(context.Background(), h.session.ID, "NM1DOE/JOHN MR")
	require.NoError(t, err)
	assert.Len(t, out, 2)

	other := h.terminal.OpenSession()
	assert.Empty(t, other.Draft().Passengers)

	assert.Equal(t, 0, h.terminal.CloseIdle(time.Hour))
	require.NoError(t, h.terminal.CloseSession(other.ID))
	assert.ErrorIs(t, h.terminal.CloseSession(other.ID), usecase.ErrSessionNotFound)

	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, 1, h.terminal.CloseIdle(time.Millisecond))
	_, err = h.terminal.Session(h.session.ID)
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
}
