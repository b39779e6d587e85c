package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/DT1234273/Lockdeal/config"
	"github.com/DT1234273/Lockdeal/internal/api"
	"github.com/DT1234273/Lockdeal/internal/domain/entity"
	"github.com/DT1234273/Lockdeal/internal/infra/poll"
	"github.com/DT1234273/Lockdeal/internal/infra/qrcode"
	"github.com/DT1234273/Lockdeal/internal/usecase"

	"go.uber.org/fx"
)

const usageText = `Usage: lockdeal <command> [flags]

Session:
  login         -email -password
  register      -name -email -password -role (customer|seller)
  verify        -email -otp
  resend-otp    -email
  logout
  profile
  address       -address -contact [-seller]
  pay-fee

Marketplace:
  products       [-mine] [-recommended N]
  product-add    -name -price -unit [-description] [-image file.png]
  product-edit   -id N -name -price -unit [-description] [-image file.png]
  product-delete -id N
  groups         [-tab active|locked|accepted|completed] [-available] [-all]
  join           -group N -quantity N
  create-group   -product N
  lock           -group N
  accept         -group N
  rate           -group N -score 1..5 [-feedback text]
  ratings        [-seller N]
  deals          [-seller] [-id N]
  deal-update    -id N -status pending|completed|cancelled
  orders
  confirm-order  -member N

Pickup:
  send-otp      -group N
  verify-pickup -group N -otp CODE
  pickup-qr     -group N -otp CODE [-out file.png]

  watch         poll profile and deals until interrupted
`

type commandParams struct {
	fx.In

	Shutdowner      fx.Shutdowner
	Config          *config.Config
	Logger          *slog.Logger
	Session         usecase.SessionUsecase
	Groups          usecase.GroupLifecycleUsecase
	GroupAPI        *api.GroupAPI
	ProductAPI      *api.ProductAPI
	DealAPI         *api.DealAPI
	RatingAPI       *api.RatingAPI
	Recommendations *api.RecommendationAPI
	QRCode          *qrcode.Service
	Poller          *poll.Poller
}

// runCommand dispatches the subcommand and shuts the app down with its
// exit code.
func runCommand(ctx context.Context, params commandParams) {
	go func() {
		code := 0
		if err := dispatch(ctx, params, os.Args[1:]); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			code = 1
		}

		_ = params.Shutdowner.Shutdown(fx.ExitCode(code))
	}()
}

func dispatch(ctx context.Context, params commandParams, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usageText)

		return fmt.Errorf("missing command")
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return cmdLogin(ctx, params, rest)
	case "register":
		return cmdRegister(ctx, params, rest)
	case "verify":
		return cmdVerify(ctx, params, rest)
	case "resend-otp":
		return cmdResendOTP(ctx, params, rest)
	case "logout":
		return cmdLogout(params)
	case "profile":
		return cmdProfile(ctx, params)
	case "address":
		return cmdAddress(ctx, params, rest)
	case "pay-fee":
		return cmdPayFee(ctx, params)
	case "products":
		return cmdProducts(ctx, params, rest)
	case "product-add":
		return cmdProductAdd(ctx, params, rest)
	case "product-edit":
		return cmdProductEdit(ctx, params, rest)
	case "product-delete":
		return cmdProductDelete(ctx, params, rest)
	case "groups":
		return cmdGroups(ctx, params, rest)
	case "join":
		return cmdJoin(ctx, params, rest)
	case "create-group":
		return cmdCreateGroup(ctx, params, rest)
	case "lock":
		return cmdLock(ctx, params, rest)
	case "accept":
		return cmdAccept(ctx, params, rest)
	case "rate":
		return cmdRate(ctx, params, rest)
	case "ratings":
		return cmdRatings(ctx, params, rest)
	case "deals":
		return cmdDeals(ctx, params, rest)
	case "deal-update":
		return cmdDealUpdate(ctx, params, rest)
	case "orders":
		return cmdOrders(ctx, params)
	case "confirm-order":
		return cmdConfirmOrder(ctx, params, rest)
	case "send-otp":
		return cmdSendOTP(ctx, params, rest)
	case "verify-pickup":
		return cmdVerifyPickup(ctx, params, rest)
	case "pickup-qr":
		return cmdPickupQR(ctx, params, rest)
	case "watch":
		return cmdWatch(ctx, params)
	case "help", "-h", "--help":
		fmt.Print(usageText)

		return nil
	default:
		fmt.Fprint(os.Stderr, usageText)

		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func parseFlags(name string, args []string, bind func(fs *flag.FlagSet)) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	bind(fs)

	return fs.Parse(args)
}

func cmdLogin(ctx context.Context, params commandParams, args []string) error {
	var input usecase.LoginInput
	if err := parseFlags("login", args, func(fs *flag.FlagSet) {
		fs.StringVar(&input.Email, "email", "", "account email")
		fs.StringVar(&input.Password, "password", "", "account password")
	}); err != nil {
		return err
	}

	if _, err := params.Session.Login(ctx, input); err != nil {
		return err
	}
	fmt.Println("OTP sent. Run: lockdeal verify -email", input.Email, "-otp <code>")

	return nil
}

func cmdRegister(ctx context.Context, params commandParams, args []string) error {
	var input usecase.RegisterInput
	var role string
	if err := parseFlags("register", args, func(fs *flag.FlagSet) {
		fs.StringVar(&input.Name, "name", "", "display name")
		fs.StringVar(&input.Email, "email", "", "account email")
		fs.StringVar(&input.Password, "password", "", "account password")
		fs.StringVar(&role, "role", string(entity.RoleCustomer), "customer or seller")
	}); err != nil {
		return err
	}
	input.ConfirmPassword = input.Password
	input.Role = entity.Role(role)

	if _, err := params.Session.Register(ctx, input); err != nil {
		return err
	}
	fmt.Println("Registered. OTP sent to", input.Email)

	return nil
}

func cmdVerify(ctx context.Context, params commandParams, args []string) error {
	var input usecase.VerifyOTPInput
	if err := parseFlags("verify", args, func(fs *flag.FlagSet) {
		fs.StringVar(&input.Email, "email", "", "account email")
		fs.StringVar(&input.OTPCode, "otp", "", "verification code")
	}); err != nil {
		return err
	}

	sess, err := params.Session.VerifyOTP(ctx, input)
	if err != nil {
		return err
	}
	fmt.Printf("Logged in as %s (%s)\n", sess.User.Email, sess.Role())

	return nil
}

func cmdResendOTP(ctx context.Context, params commandParams, args []string) error {
	var email string
	if err := parseFlags("resend-otp", args, func(fs *flag.FlagSet) {
		fs.StringVar(&email, "email", "", "account email")
	}); err != nil {
		return err
	}

	if err := params.Session.ResendOTP(ctx, email); err != nil {
		return err
	}
	fmt.Println("OTP resent to", email)

	return nil
}

func cmdLogout(params commandParams) error {
	if _, err := params.Session.Logout(); err != nil {
		return err
	}
	fmt.Println("Logged out")

	return nil
}

func cmdProfile(ctx context.Context, params commandParams) error {
	sess := params.Session.Restore(ctx)
	if !sess.IsAuthenticated() {
		return fmt.Errorf("not logged in")
	}

	user := sess.User
	fmt.Printf("%s <%s> role=%s verified=%t\n", user.Name, user.Email, user.Role, user.IsVerified)
	if user.Seller != nil {
		fmt.Printf("shop: %s, address: %s, contact: %s, fee paid: %t\n",
			user.Seller.ShopName, user.Seller.Address, user.Seller.Contact, user.Seller.Paid99)
	}
	if sess.CustomerAddress != nil {
		fmt.Printf("pickup contact: %s / %s\n", sess.CustomerAddress.Address, sess.CustomerAddress.Phone)
	}

	return nil
}

func cmdAddress(ctx context.Context, params commandParams, args []string) error {
	var input usecase.UpdateAddressInput
	var seller bool
	if err := parseFlags("address", args, func(fs *flag.FlagSet) {
		fs.StringVar(&input.Address, "address", "", "pickup address")
		fs.StringVar(&input.Contact, "contact", "", "contact phone")
		fs.BoolVar(&seller, "seller", false, "update the seller profile instead of the customer contact")
	}); err != nil {
		return err
	}

	params.Session.Restore(ctx)

	var err error
	if seller {
		_, err = params.Session.UpdateSellerAddress(ctx, input)
	} else {
		_, err = params.Session.UpdateCustomerAddress(ctx, input)
	}
	if err != nil {
		return err
	}
	fmt.Println("Address updated")

	return nil
}

func cmdPayFee(ctx context.Context, params commandParams) error {
	params.Session.Restore(ctx)

	sess, err := params.Session.PaySellerFee(ctx)
	if err != nil {
		return err
	}
	fmt.Println("Seller fee paid. fee paid:", sess.User.Seller.Paid99)

	return nil
}

func cmdProducts(ctx context.Context, params commandParams, args []string) error {
	var mine bool
	var recommended int
	if err := parseFlags("products", args, func(fs *flag.FlagSet) {
		fs.BoolVar(&mine, "mine", false, "list only the seller's own products")
		fs.IntVar(&recommended, "recommended", 0, "list up to N recommended products instead")
	}); err != nil {
		return err
	}

	params.Session.Restore(ctx)

	var products []entity.Product
	var err error
	switch {
	case recommended > 0:
		products, err = params.Recommendations.GetRecommendedProducts(ctx, recommended)
	case mine:
		products, err = params.ProductAPI.GetSellerProducts(ctx)
	default:
		products, err = params.ProductAPI.GetAll(ctx)
	}
	if err != nil {
		return err
	}

	for _, p := range products {
		fmt.Printf("#%d %s - %.2f per %s\n", p.ID, p.Name, p.Price, p.Unit)
	}
	fmt.Println(len(products), "products")

	return nil
}

func bindProductFlags(fs *flag.FlagSet, form *api.ProductForm, image *string) {
	fs.StringVar(&form.Name, "name", "", "product name")
	fs.Float64Var(&form.Price, "price", 0, "unit price")
	fs.StringVar(&form.Unit, "unit", "", "sales unit, e.g. kg")
	fs.StringVar(&form.Description, "description", "", "optional description")
	fs.StringVar(image, "image", "", "optional image file")
}

// attachImage opens the image file into the form. The returned closer
// must run after the upload.
func attachImage(form *api.ProductForm, path string) (func(), error) {
	if path == "" {
		return func() {}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	form.Image = f
	form.ImageName = filepath.Base(path)

	return func() { _ = f.Close() }, nil
}

func cmdProductAdd(ctx context.Context, params commandParams, args []string) error {
	var form api.ProductForm
	var image string
	if err := parseFlags("product-add", args, func(fs *flag.FlagSet) {
		bindProductFlags(fs, &form, &image)
	}); err != nil {
		return err
	}

	closeImage, err := attachImage(&form, image)
	if err != nil {
		return err
	}
	defer closeImage()

	params.Session.Restore(ctx)

	product, err := params.ProductAPI.Create(ctx, form)
	if err != nil {
		return err
	}
	fmt.Println("Created product", product.ID)

	return nil
}

func cmdProductEdit(ctx context.Context, params commandParams, args []string) error {
	var form api.ProductForm
	var image string
	var id int
	if err := parseFlags("product-edit", args, func(fs *flag.FlagSet) {
		fs.IntVar(&id, "id", 0, "product id")
		bindProductFlags(fs, &form, &image)
	}); err != nil {
		return err
	}

	closeImage, err := attachImage(&form, image)
	if err != nil {
		return err
	}
	defer closeImage()

	params.Session.Restore(ctx)

	product, err := params.ProductAPI.Update(ctx, id, form)
	if err != nil {
		return err
	}
	fmt.Println("Updated product", product.ID)

	return nil
}

func cmdProductDelete(ctx context.Context, params commandParams, args []string) error {
	var id int
	if err := parseFlags("product-delete", args, func(fs *flag.FlagSet) {
		fs.IntVar(&id, "id", 0, "product id")
	}); err != nil {
		return err
	}

	params.Session.Restore(ctx)

	if err := params.ProductAPI.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Println("Deleted product", id)

	return nil
}

func cmdGroups(ctx context.Context, params commandParams, args []string) error {
	var tab string
	var available, all bool
	if err := parseFlags("groups", args, func(fs *flag.FlagSet) {
		fs.StringVar(&tab, "tab", "", "filter by tab: active, locked, accepted, completed")
		fs.BoolVar(&available, "available", false, "list other sellers' pools ready to accept")
		fs.BoolVar(&all, "all", false, "list every group visible to the account")
	}); err != nil {
		return err
	}

	sess := params.Session.Restore(ctx)
	if !sess.IsAuthenticated() {
		return fmt.Errorf("not logged in")
	}

	now := time.Now()
	wanted := entity.Tab(strings.ToLower(tab))
	if tab != "" && !wanted.IsValid() {
		return fmt.Errorf("unknown tab: %s", tab)
	}

	var groups []usecase.ClassifiedGroup
	var err error
	switch {
	case available:
		groups, err = params.Groups.AvailableGroups(ctx, sess.User.ID, now)
	case all:
		var raw []entity.Group
		raw, err = params.GroupAPI.GetAll(ctx)
		groups = classifyRaw(params, raw, now)
	case wanted == entity.TabAccepted || wanted == entity.TabCompleted:
		// The backend serves these two views directly.
		var raw []entity.Group
		if wanted == entity.TabAccepted {
			raw, err = params.GroupAPI.GetAccepted(ctx)
		} else {
			raw, err = params.GroupAPI.GetCompleted(ctx)
		}
		groups = classifyRaw(params, raw, now)
	default:
		groups, err = params.Groups.MyGroups(ctx, now)
		if err == nil && tab != "" {
			groups = params.Groups.FilterTab(groups, wanted)
		}
	}
	if err != nil {
		return err
	}

	for _, g := range groups {
		rated := ""
		if g.HasRating {
			rated = " (rated)"
		}
		fmt.Printf("#%d [%s] %s - %s, %d members, total %.2f%s\n",
			g.ID, g.StatusLabel, productName(g.Group), shopName(g.Group), g.Members, g.TotalPrice, rated)
	}
	fmt.Println(len(groups), "groups")

	return nil
}

func classifyRaw(params commandParams, raw []entity.Group, now time.Time) []usecase.ClassifiedGroup {
	groups := make([]usecase.ClassifiedGroup, 0, len(raw))
	for i := range raw {
		tab := params.Groups.Classify(&raw[i])
		groups = append(groups, usecase.ClassifiedGroup{
			Group:       raw[i],
			Tab:         tab,
			StatusLabel: params.Groups.StatusLabel(tab, now),
		})
	}

	return groups
}

func productName(g entity.Group) string {
	if g.Product != nil {
		return g.Product.Name
	}

	return fmt.Sprintf("product #%d", g.ProductID)
}

func shopName(g entity.Group) string {
	if g.Seller != nil {
		return g.Seller.ShopName
	}

	return fmt.Sprintf("seller #%d", g.SellerID)
}

func cmdJoin(ctx context.Context, params commandParams, args []string) error {
	var groupID, quantity int
	if err := parseFlags("join", args, func(fs *flag.FlagSet) {
		fs.IntVar(&groupID, "group", 0, "group id")
		fs.IntVar(&quantity, "quantity", 1, "units to buy")
	}); err != nil {
		return err
	}

	params.Session.Restore(ctx)

	resp, err := params.GroupAPI.Join(ctx, groupID, quantity)
	if err != nil {
		return err
	}
	fmt.Println(resp.Message)

	return nil
}

func cmdCreateGroup(ctx context.Context, params commandParams, args []string) error {
	var productID int
	if err := parseFlags("create-group", args, func(fs *flag.FlagSet) {
		fs.IntVar(&productID, "product", 0, "product id")
	}); err != nil {
		return err
	}

	params.Session.Restore(ctx)

	group, err := params.GroupAPI.Create(ctx, productID)
	if err != nil {
		return err
	}
	fmt.Println("Created group", group.ID)

	return nil
}

func cmdLock(ctx context.Context, params commandParams, args []string) error {
	var groupID int
	if err := parseFlags("lock", args, func(fs *flag.FlagSet) {
		fs.IntVar(&groupID, "group", 0, "group id")
	}); err != nil {
		return err
	}

	params.Session.Restore(ctx)

	resp, err := params.GroupAPI.Lock(ctx, groupID)
	if err != nil {
		return err
	}
	fmt.Println(resp.Message)

	return nil
}

func cmdAccept(ctx context.Context, params commandParams, args []string) error {
	var groupID int
	if err := parseFlags("accept", args, func(fs *flag.FlagSet) {
		fs.IntVar(&groupID, "group", 0, "group id")
	}); err != nil {
		return err
	}

	params.Session.Restore(ctx)

	resp, err := params.GroupAPI.Accept(ctx, groupID)
	if err != nil {
		return err
	}
	fmt.Println(resp.Message)

	return nil
}

func cmdRate(ctx context.Context, params commandParams, args []string) error {
	var groupID int
	var input usecase.SubmitRatingInput
	if err := parseFlags("rate", args, func(fs *flag.FlagSet) {
		fs.IntVar(&groupID, "group", 0, "group id")
		fs.IntVar(&input.Score, "score", 0, "score 1..5")
		fs.StringVar(&input.Feedback, "feedback", "", "optional feedback")
	}); err != nil {
		return err
	}

	params.Session.Restore(ctx)

	if params.Groups.HasRated(groupID) {
		return fmt.Errorf("group %d was already rated from this installation", groupID)
	}

	group, err := params.GroupAPI.Get(ctx, groupID)
	if err != nil {
		return err
	}
	input.Group = group

	rating, err := params.Groups.SubmitRating(ctx, input)
	if err != nil {
		return err
	}
	fmt.Println("Rating submitted, id", rating.ID)

	return nil
}

func cmdRatings(ctx context.Context, params commandParams, args []string) error {
	var sellerID int
	if err := parseFlags("ratings", args, func(fs *flag.FlagSet) {
		fs.IntVar(&sellerID, "seller", 0, "list a seller's received ratings instead of your own")
	}); err != nil {
		return err
	}

	params.Session.Restore(ctx)

	var ratings []entity.Rating
	var err error
	if sellerID > 0 {
		ratings, err = params.RatingAPI.GetSellerRatings(ctx, sellerID)
	} else {
		ratings, err = params.RatingAPI.GetMyRatings(ctx)
	}
	if err != nil {
		return err
	}

	for _, r := range ratings {
		fmt.Printf("#%d seller %d score %d/5 %s\n", r.ID, r.SellerID, r.Score, r.Feedback)
	}
	fmt.Println(len(ratings), "ratings")

	return nil
}

func cmdDeals(ctx context.Context, params commandParams, args []string) error {
	var seller bool
	var id int
	if err := parseFlags("deals", args, func(fs *flag.FlagSet) {
		fs.BoolVar(&seller, "seller", false, "list the seller's deals")
		fs.IntVar(&id, "id", 0, "show one deal")
	}); err != nil {
		return err
	}

	params.Session.Restore(ctx)

	if id > 0 {
		deal, err := params.DealAPI.Get(ctx, id)
		if err != nil {
			return err
		}
		fmt.Printf("#%d group %d - %s, %d members, amount %.2f\n",
			deal.ID, deal.GroupID, deal.Status, deal.TotalMembers, deal.TotalAmount)

		return nil
	}

	var deals []entity.Deal
	var err error
	if seller {
		deals, err = params.DealAPI.GetSellerDeals(ctx)
	} else {
		deals, err = params.DealAPI.GetAll(ctx)
	}
	if err != nil {
		return err
	}

	for _, d := range deals {
		fmt.Printf("#%d group %d - %s\n", d.ID, d.GroupID, d.Status)
	}
	fmt.Println(len(deals), "deals")

	return nil
}

func cmdDealUpdate(ctx context.Context, params commandParams, args []string) error {
	var id int
	var status string
	if err := parseFlags("deal-update", args, func(fs *flag.FlagSet) {
		fs.IntVar(&id, "id", 0, "deal id")
		fs.StringVar(&status, "status", "", "new status: pending, completed or cancelled")
	}); err != nil {
		return err
	}

	wanted := entity.DealStatus(strings.ToLower(status))
	if !wanted.IsValid() {
		return fmt.Errorf("unknown status: %s", status)
	}

	params.Session.Restore(ctx)

	req := api.UpdateDealRequest{Status: &wanted}
	if wanted == entity.DealCompleted {
		now := time.Now()
		req.CompletedAt = &now
	}

	deal, err := params.DealAPI.Update(ctx, id, req)
	if err != nil {
		return err
	}
	fmt.Printf("Deal %d is now %s\n", deal.ID, deal.Status)

	return nil
}

// cmdOrders lists the caller's pending orders, annotated with the group
// membership ids confirm-order needs.
func cmdOrders(ctx context.Context, params commandParams) error {
	sess := params.Session.Restore(ctx)
	if !sess.IsAuthenticated() {
		return fmt.Errorf("not logged in")
	}

	products, err := params.DealAPI.GetCustomerProducts(ctx, sess.User.ID)
	if err != nil {
		return err
	}

	for _, p := range products {
		fmt.Printf("#%d %s x%d, total %.2f (group %d, member %d)\n",
			p.ID, p.Name, p.Quantity, p.TotalPrice, p.GroupID, p.GroupMemberID)
	}
	fmt.Println(len(products), "orders")

	return nil
}

func cmdConfirmOrder(ctx context.Context, params commandParams, args []string) error {
	var memberID int
	if err := parseFlags("confirm-order", args, func(fs *flag.FlagSet) {
		fs.IntVar(&memberID, "member", 0, "group member id")
	}); err != nil {
		return err
	}

	params.Session.Restore(ctx)

	resp, err := params.DealAPI.ConfirmOrder(ctx, memberID)
	if err != nil {
		return err
	}
	fmt.Println(resp.Message)

	return nil
}

func cmdSendOTP(ctx context.Context, params commandParams, args []string) error {
	var groupID int
	if err := parseFlags("send-otp", args, func(fs *flag.FlagSet) {
		fs.IntVar(&groupID, "group", 0, "group id")
	}); err != nil {
		return err
	}

	params.Session.Restore(ctx)

	resp, err := params.GroupAPI.SendDistributionOTP(ctx, groupID)
	if err != nil {
		return err
	}
	fmt.Println(resp.Message)

	return nil
}

func cmdVerifyPickup(ctx context.Context, params commandParams, args []string) error {
	var groupID int
	var otp string
	if err := parseFlags("verify-pickup", args, func(fs *flag.FlagSet) {
		fs.IntVar(&groupID, "group", 0, "group id")
		fs.StringVar(&otp, "otp", "", "distribution code")
	}); err != nil {
		return err
	}

	params.Session.Restore(ctx)

	resp, err := params.GroupAPI.VerifyDistributionOTP(ctx, groupID, otp)
	if err != nil {
		return err
	}
	fmt.Println(resp.Message)

	return nil
}

func cmdPickupQR(ctx context.Context, params commandParams, args []string) error {
	var groupID int
	var otp, out string
	if err := parseFlags("pickup-qr", args, func(fs *flag.FlagSet) {
		fs.IntVar(&groupID, "group", 0, "group id")
		fs.StringVar(&otp, "otp", "", "distribution code")
		fs.StringVar(&out, "out", "pickup.png", "output PNG file")
	}); err != nil {
		return err
	}

	png, err := params.QRCode.GeneratePickupQR(groupID, otp)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, png, 0o644); err != nil {
		return err
	}
	fmt.Println("Wrote", out)

	return nil
}

// cmdWatch keeps the cached profile and deal list fresh until the
// process is interrupted.
func cmdWatch(ctx context.Context, params commandParams) error {
	sess := params.Session.Restore(ctx)
	if !sess.IsAuthenticated() {
		return fmt.Errorf("not logged in")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer params.Poller.Close()

	params.Poller.Start(ctx, "profile", params.Config.Poll.ProfileInterval, func(ctx context.Context) error {
		_, err := params.Session.RefreshProfile(ctx)

		return err
	})
	params.Poller.Start(ctx, "deals", params.Config.Poll.DealsInterval, func(ctx context.Context) error {
		deals, err := params.DealAPI.GetAll(ctx)
		if err != nil {
			return err
		}
		params.Logger.Info("Deals refreshed", slog.Int("count", len(deals)))

		return nil
	})

	fmt.Println("Watching. Press Ctrl-C to stop.")
	<-ctx.Done()

	return nil
}
