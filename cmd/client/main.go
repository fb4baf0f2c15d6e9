package main

import (
	"bufio"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

const defaultHost = "127.0.0.1"
const defaultPort = 65430

var validCategories = []string{
	"1", "2", "3", "4", "5", "6",
	"Brelan", "Carré", "Full", "Petite Suite", "Grande Suite", "Yahtzee", "Chance",
}

func main() {
	hostFlag := flag.String("host", defaultHost, "server host")
	portFlag := flag.Uint("port", defaultPort, "server port")
	flag.Parse()

	title, err := pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Y", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("ahtzee", pterm.FgDarkGray.ToStyle()),
	).Srender()
	if err == nil {
		pterm.Print(title)
	}
	pterm.Println()

	addr := net.JoinHostPort(*hostFlag, strconv.Itoa(int(*portFlag)))
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		pterm.Error.Printfln("Erreur de connexion: %v", err)
		os.Exit(1)
	}
	defer conn.Close()
	pterm.Success.Println("Connexion au serveur réussie.")

	r := bufio.NewReader(conn)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			pterm.Warning.Println("Déconnexion du serveur.")
			return
		}
		display := strings.TrimRight(strings.ReplaceAll(line, "Serveur : ", ""), "\n")
		if display != "" {
			pterm.Println(display)
		}

		reply, ok := replyFor(line)
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(conn, "%s\n", reply); err != nil {
			pterm.Error.Printfln("Erreur lors de l'envoi des données: %v", err)
			return
		}
	}
}

// replyFor matches the server line against the prompts that expect an
// answer and gathers validated local input for them.
func replyFor(line string) (string, bool) {
	switch {
	case strings.Contains(line, "Entrez votre nom"):
		return prompt(">>", nil), true
	case strings.Contains(line, "créer une nouvelle partie ou rejoindre"):
		return prompt("(C/R)", oneOf("C", "R")), true
	case strings.Contains(line, "Combien de joueurs vont participer"),
		strings.Contains(line, "Entrée invalide. Entrez un nombre entier"),
		strings.Contains(line, "Le nombre de joueurs doit être au moins 2"):
		return prompt(">>", atLeastTwo), true
	case strings.Contains(line, "Choisissez une partie à rejoindre"):
		return prompt(">>", nil), true
	case strings.Contains(line, "Voulez-vous relancer des dés"):
		return prompt("(O/N)", oneOf("O", "N")), true
	case strings.Contains(line, "Indiquez les indices des dés à relancer"):
		return prompt("ex: 1,3,5 ou rien pour conserver tous les dés", nil), true
	case strings.Contains(line, "Choisissez une figure à remplir"):
		return prompt(">>", isCategory), true
	}
	return "", false
}

// prompt reads local input until validate accepts it.
func prompt(label string, validate func(string) bool) string {
	for {
		input, _ := pterm.DefaultInteractiveTextInput.WithDefaultText(label).Show()
		input = strings.TrimSpace(input)
		if validate == nil || validate(input) {
			return input
		}
		pterm.Warning.Println("Entrée invalide. Veuillez réessayer.")
	}
}

func oneOf(choices ...string) func(string) bool {
	return func(s string) bool {
		for _, c := range choices {
			if strings.EqualFold(s, c) {
				return true
			}
		}
		return false
	}
}

func atLeastTwo(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n > 1
}

func isCategory(s string) bool {
	for _, c := range validCategories {
		if s == c {
			return true
		}
	}
	return false
}
