// Command demo drives the simulated backend through a scripted client
// session: sign-up with remember-me, posting, a second user interacting,
// moderation kicking in, and a remember-me login after the session token
// is thrown away.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/andrewkatson/positiveonly/internal/config"
	"github.com/andrewkatson/positiveonly/internal/logging"
	"github.com/andrewkatson/positiveonly/internal/service"
	"github.com/andrewkatson/positiveonly/internal/simulator"
	"github.com/andrewkatson/positiveonly/internal/tokenstore"
)

const (
	demoIP    = "192.168.1.20"
	demoImage = "https://images.example.com/golden-hour.jpg"

	// tokenstore service names, one per credential kind.
	svcSession = "session"
	svcSeries  = "remember-me-series"
	svcCookie  = "remember-me-cookie"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx := context.Background()
	cfg := config.Load()

	sim := simulator.New(cfg)
	sim.SetLogger(logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))))

	// Reset codes normally go out by email; here they just get printed.
	sim.SetResetCodeGenerator(func() int {
		fmt.Println("  (reset code issued: 424242)")
		return 424242
	})

	keychain := tokenstore.NewMemory()

	fmt.Println("== alice signs up with remember-me ==")
	alice, err := sim.Register(ctx, service.RegisterInput{
		Username:   "alice",
		Email:      "alice@example.com",
		Password:   "Golden_Hour1",
		RememberMe: true,
		IP:         demoIP,
	})
	if err != nil {
		return err
	}
	if err := keychain.Save(svcSession, "alice", alice.SessionToken); err != nil {
		return err
	}
	if err := keychain.Save(svcSeries, "alice", *alice.SeriesID); err != nil {
		return err
	}
	if err := keychain.Save(svcCookie, "alice", *alice.CookieToken); err != nil {
		return err
	}

	post, err := sim.MakePost(ctx, alice.SessionToken, demoImage, "golden hour at the pier")
	if err != nil {
		return err
	}
	fmt.Printf("alice posted %s\n", post.PostID)

	// Moderation: the positivity filter rejects the caption outright.
	if _, err := sim.MakePost(ctx, alice.SessionToken, demoImage, "feeling negative today"); err != nil {
		fmt.Printf("rejected caption: %v\n", err)
	}

	fmt.Println("\n== bob joins and interacts ==")
	bob, err := sim.Register(ctx, service.RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "Golden_Hour1",
		IP:       demoIP,
	})
	if err != nil {
		return err
	}

	feed, err := sim.GetPostsInFeed(ctx, bob.SessionToken, 0)
	if err != nil {
		return err
	}
	for _, p := range feed {
		fmt.Printf("bob's feed: %q by %s (%d likes)\n", p.Caption, p.AuthorUsername, p.Likes)
	}

	if err := sim.LikePost(ctx, bob.SessionToken, post.PostID); err != nil {
		return err
	}
	if err := sim.FollowUser(ctx, bob.SessionToken, "alice"); err != nil {
		return err
	}
	comment, err := sim.CommentOnPost(ctx, bob.SessionToken, post.PostID, "what a view")
	if err != nil {
		return err
	}
	aliceSession, err := keychain.Load(svcSession, "alice")
	if err != nil {
		return err
	}
	if _, err := sim.ReplyToThread(ctx, aliceSession, post.PostID, comment.ThreadID, "come visit sometime"); err != nil {
		return err
	}

	profile, err := sim.GetProfileDetails(ctx, bob.SessionToken, "alice")
	if err != nil {
		return err
	}
	fmt.Printf("alice's profile: %d post(s), %d follower(s)\n", profile.PostCount, profile.FollowerCount)

	fmt.Println("\n== alice's session expires; the remember-me cookie brings her back ==")
	if err := sim.Logout(ctx, aliceSession); err != nil {
		return err
	}
	if err := keychain.Delete(svcSession, "alice"); err != nil {
		return err
	}

	series, err := keychain.Load(svcSeries, "alice")
	if err != nil {
		return err
	}
	cookie, err := keychain.Load(svcCookie, "alice")
	if err != nil {
		return err
	}
	refreshed, err := sim.LoginWithRememberMe(ctx, series, cookie, demoIP)
	if err != nil {
		return err
	}
	// The cookie token rotates on every redemption; store the new one.
	if err := keychain.Save(svcCookie, "alice", refreshed.CookieToken); err != nil {
		return err
	}
	if err := keychain.Save(svcSession, "alice", refreshed.SessionToken); err != nil {
		return err
	}
	fmt.Println("alice is signed in again with a rotated cookie token")

	fmt.Println("\n== the crowd reports bob's post off the listings ==")
	bobPost, err := sim.MakePost(ctx, bob.SessionToken, demoImage, "look at this everyone")
	if err != nil {
		return err
	}
	for i := 0; i <= cfg.HidePostThreshold; i++ {
		name := fmt.Sprintf("reporter%d", i)
		reporter, err := sim.Register(ctx, service.RegisterInput{
			Username: name,
			Email:    name + "@example.com",
			Password: "Golden_Hour1",
			IP:       demoIP,
		})
		if err != nil {
			return err
		}
		if err := sim.ReportPost(ctx, reporter.SessionToken, bobPost.PostID, "spam"); err != nil {
			return err
		}
	}

	feed, err = sim.GetPostsInFeed(ctx, refreshed.SessionToken, 0)
	if err != nil {
		return err
	}
	fmt.Printf("alice's feed after moderation: %d post(s)\n", len(feed))
	if details, err := sim.GetPostDetails(ctx, bobPost.PostID); err == nil {
		fmt.Printf("the hidden post still resolves by id: %q\n", details.Caption)
	}

	return nil
}
