package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"snake-arena/constants"
	"snake-arena/game"
	"snake-arena/inbox"
	"snake-arena/models"
	"snake-arena/session"
	"snake-arena/socket"
)

func main() {
	addr := flag.String("addr", "ws://localhost:8080", "arena server base URL")
	name := flag.String("name", "", "display name")
	team := flag.String("team", "", "preferred team (red or blue)")
	flag.Parse()

	store := session.NewStore()
	ib := inbox.New()
	sock := socket.New(strings.TrimRight(*addr, "/") + constants.SOCKET_PATH)
	client := game.NewClient(store, ib, sock)
	client.SetIdentity(*name, models.Team(*team))

	sock.OnMessage(client.HandleMessage)
	sock.OnStatus(client.HandleStatus)

	store.Subscribe(func() { printState(store) })
	ib.Subscribe(func() {
		if n := ib.UnreadCount(); n > 0 {
			fmt.Printf("[bell] %d unread\n", n)
		}
	})

	if err := sock.Connect(); err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer sock.Close()

	fmt.Println("commands: join | start | pause | retry | leave | bell | roster |")
	fmt.Println("          inbox | clear | accept <id> | decline <id> | w/a/s/d | quit")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(line)
		if len(fields) == 0 {
			client.HandleKey("space")
			continue
		}
		switch fields[0] {
		case "quit", "exit":
			return
		case "join":
			client.Join()
		case "start", "resume":
			client.StartOrResume()
		case "pause":
			client.Pause()
		case "retry":
			client.Retry()
		case "leave":
			client.Leave()
		case "bell":
			client.Panels().ToggleNotifications()
			if client.Panels().NotificationsOpen() {
				printInbox(ib)
			}
		case "roster":
			client.Panels().ToggleRoster()
			if client.Panels().RosterOpen() {
				printRoster(store)
			}
		case "inbox":
			printInbox(ib)
		case "clear":
			ib.ClearAll()
		case "accept", "decline":
			if len(fields) < 2 {
				continue
			}
			key := constants.ACTION_ACCEPT_FRIEND
			if fields[0] == "decline" {
				key = constants.ACTION_DECLINE_FRIEND
			}
			client.InvokeNotificationAction(fields[1], key)
		case "friend":
			if len(fields) < 2 {
				continue
			}
			sendFriendRequest(client, store, fields[1])
		default:
			client.HandleKey(fields[0])
		}
	}
}

func printState(store *session.Store) {
	st := store.Snapshot()
	if st.Snake == nil {
		fmt.Printf("[%s] joined=%v (no snake yet)\n", st.Connection, st.Joined)
		return
	}
	fmt.Printf("[%s] %s score=%d level=%d active=%v paused=%v defeated=%v scores red=%d blue=%d\n",
		st.Connection, st.Snake.Name, st.Snake.Score, st.Snake.Level,
		st.Active, st.Snake.Paused(), st.Snake.IsDefeated,
		st.TeamScores.Red, st.TeamScores.Blue)
}

func printInbox(ib *inbox.Inbox) {
	items := ib.Items()
	if len(items) == 0 {
		fmt.Println("no notifications")
		return
	}
	for _, n := range items {
		mark := " "
		if !n.IsRead {
			mark = "*"
		}
		fmt.Printf("%s [%s] %s (%s)\n", mark, n.Type, n.Message, n.ID)
	}
}

func printRoster(store *session.Store) {
	st := store.Snapshot()
	for _, p := range st.Roster {
		fmt.Printf("%-20s %-5s score=%d level=%d paused=%v defeated=%v (%s)\n",
			p.Name, p.Team, p.Score, p.Level, p.IsPaused, p.IsDefeated, p.ID)
	}
}

func sendFriendRequest(client *game.Client, store *session.Store, target string) {
	st := store.Snapshot()
	for _, p := range st.Roster {
		if p.ID == target || p.Name == target {
			client.SendFriendRequest(p)
			return
		}
	}
	fmt.Printf("no such player: %s\n", target)
}
