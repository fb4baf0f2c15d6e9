package tcp

import (
	"bufio"
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ybellec/yahtzee-server/internal/app"
	"github.com/ybellec/yahtzee-server/internal/core"
)

type allSixes struct{}

func (allSixes) Intn(n int) int { return 5 % n }

// step is one beat of a scripted client: wait for a prompt, answer it.
type step struct {
	waitFor string
	send    string
}

// runScriptedClient dials addr and plays the steps, returning the full
// transcript it received.
func runScriptedClient(t *testing.T, addr string, steps []step) string {
	t.Helper()
	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetDeadline(time.Now().Add(10*time.Second)))

	var transcript strings.Builder
	r := bufio.NewReader(conn)
	for _, st := range steps {
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				t.Fatalf("waiting for %q: %v\ntranscript so far:\n%s", st.waitFor, err, transcript.String())
			}
			transcript.WriteString(line)
			if strings.Contains(line, st.waitFor) {
				break
			}
		}
		if st.send != "" {
			_, err := conn.Write([]byte(st.send + "\n"))
			require.NoError(t, err)
		}
	}
	return transcript.String()
}

func TestServerEndToEnd(t *testing.T) {
	reg := app.NewRegistry(1,
		core.WithDiceSource(allSixes{}),
		core.WithWaitPoll(10*time.Millisecond),
	)
	srv := &Server{Lobby: app.NewLobby(reg)}

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = srv.Serve(ctx, l) }()
	addr := l.Addr().String()

	creatorDone := make(chan string, 1)
	go func() {
		creatorDone <- runScriptedClient(t, addr, []step{
			{waitFor: "Entrez votre nom:", send: "alice"},
			{waitFor: "(C/R):", send: "C"},
			{waitFor: "Combien de joueurs vont participer?", send: "2"},
			{waitFor: "C'est votre tour, alice.", send: ""},
			{waitFor: "Voulez-vous relancer des dés ? (O/N):", send: "N"},
			{waitFor: "Choisissez une figure à remplir:", send: "Yahtzee"},
			{waitFor: "Points ajoutés: 50. Score total: 50", send: ""},
			{waitFor: "La partie est terminée!", send: ""},
			{waitFor: "Le gagnant est alice", send: ""},
		})
	}()

	// let alice create the game before bob asks for the listing
	require.Eventually(t, func() bool { return reg.Count() == 1 }, 5*time.Second, 10*time.Millisecond)

	transcript := runScriptedClient(t, addr, []step{
		{waitFor: "Entrez votre nom:", send: "bob"},
		{waitFor: "(C/R):", send: "R"},
		{waitFor: "Partie 1.", send: ""},
		{waitFor: "Choisissez une partie à rejoindre:", send: "1"},
		{waitFor: "La partie commence!", send: ""},
		{waitFor: "alice a marqué 50 points pour la figure Yahtzee.", send: ""},
		{waitFor: "C'est votre tour, bob.", send: ""},
		{waitFor: "Voulez-vous relancer des dés ? (O/N):", send: "N"},
		{waitFor: "Choisissez une figure à remplir:", send: "Chance"},
		{waitFor: "La partie est terminée!", send: ""},
		{waitFor: "Le gagnant est alice avec un score de 50 points!", send: ""},
	})

	select {
	case ct := <-creatorDone:
		assert.Contains(t, ct, "Résultat initial des dés: [6, 6, 6, 6, 6]")
	case <-time.After(10 * time.Second):
		t.Fatal("creator client did not finish")
	}
	assert.Contains(t, transcript, "Nom du joueur")

	require.Eventually(t, func() bool {
		reg.Reap()
		return reg.Count() == 0
	}, 5*time.Second, 20*time.Millisecond)
}

func TestChatRelaysBetweenClients(t *testing.T) {
	chat := &ChatServer{}
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		<-ctx.Done()
		_ = l.Close()
	}()
	go func() {
		for {
			nc, err := l.Accept()
			if err != nil {
				return
			}
			go chat.handle(NewConn(nc, 0))
		}
	}()

	a, err := net.Dial("tcp", l.Addr().String())
	require.NoError(t, err)
	defer a.Close()
	b, err := net.Dial("tcp", l.Addr().String())
	require.NoError(t, err)
	defer b.Close()
	require.NoError(t, b.SetReadDeadline(time.Now().Add(5*time.Second)))

	// give the server a beat to register both clients
	require.Eventually(t, func() bool {
		chat.mu.Lock()
		defer chat.mu.Unlock()
		return len(chat.clients) == 2
	}, 2*time.Second, 10*time.Millisecond)

	_, err = a.Write([]byte("salut\n"))
	require.NoError(t, err)

	line, err := bufio.NewReader(b).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "Joueur 1: salut\n", line)
}
