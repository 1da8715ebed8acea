package cli

import (
	"context"
	"os"

	"github.com/wroger/gymtrack/internal/client/models"
	"github.com/wroger/gymtrack/internal/client/services"
	"github.com/wroger/gymtrack/internal/common"
)

// Profile walks the user through a field update: name, and optionally a
// password change.
func (a *App) Profile(ctx context.Context) error {
	current, ok := a.sessions.Current()
	if !ok {
		printlnFn("Not logged in.")
		return nil
	}

	name, err := getSimpleText(a.reader, "Name ["+current.Name+"]", os.Stdout)
	if err != nil {
		return err
	}
	if name == "" {
		name = current.Name
	}

	upd := services.ProfileUpdate{Name: name}

	change, err := getSimpleText(a.reader, "Change password? (y/N)", os.Stdout)
	if err != nil {
		return err
	}
	if change == "y" || change == "Y" {
		oldPassword, err := getPassword("Current password", os.Stdout)
		if err != nil {
			return err
		}
		defer common.WipeByteArray(oldPassword)

		newPassword, err := getPassword("New password", os.Stdout)
		if err != nil {
			return err
		}
		defer common.WipeByteArray(newPassword)

		confirm, err := getPassword("Confirm new password", os.Stdout)
		if err != nil {
			return err
		}
		defer common.WipeByteArray(confirm)

		upd.OldPassword = string(oldPassword)
		upd.NewPassword = string(newPassword)
		upd.ConfirmPassword = string(confirm)
	}

	if err := a.profile.UpdateProfile(ctx, upd); err != nil {
		printlnFn(friendlyError(err))
		return err
	}

	printlnFn("Profile updated.")
	return nil
}

// Avatar validates the image at path and uploads it as the new profile
// picture.
func (a *App) Avatar(ctx context.Context, path string) error {
	candidate, err := models.NewAvatarCandidate(path)
	if err != nil {
		printlnFn("Cannot read image: " + err.Error())
		return err
	}

	if err := a.profile.ChangeAvatar(ctx, candidate); err != nil {
		printlnFn(friendlyError(err))
		return err
	}

	printlnFn("Avatar updated.")
	return nil
}
