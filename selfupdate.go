package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"runtime"
	"strings"

	"github.com/piclock/piclock/piclock"
)

type githubReleaseAsset struct {
	URL                string `json:"url"`
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	ContentType        string `json:"content_type"`
	State              string `json:"state"`
	Size               int    `json:"size"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

type githubRelease struct {
	URL         string               `json:"url"`
	HTMLURL     string               `json:"html_url"`
	ID          int                  `json:"id"`
	TagName     string               `json:"tag_name"`
	Draft       bool                 `json:"draft"`
	Prerelease  bool                 `json:"prerelease"`
	PublishedAt string               `json:"published_at"`
	Assets      []githubReleaseAsset `json:"assets"`
}

var (
	latestReleaseURL = "https://api.github.com/repos/piclock/piclock/releases/latest"
	installDir       = "/usr/local/bin"
)

type selfupdateOpts struct {
	Force bool `short:"f" long:"force" description:"Force installing the current latest release"`
}

func (o *selfupdateOpts) Execute(args []string) error {
	err := runSelfUpdate(o.Force)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	return nil
}

func runSelfUpdate(force bool) error {
	if VersionTag == "" && !force {
		log.Println("Running a development binary, skipping update.")
		return nil
	}

	release, err := getLatestRelease()
	if err != nil {
		return err
	}

	if release.TagName == VersionTag && !force {
		log.Printf("Already running the latest release %s.", VersionTag)
		return nil
	}

	asset, err := pickAsset(release, runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return err
	}

	err = piclock.RequireRoot()
	if err != nil {
		return err
	}

	log.Printf("Updating from '%s' to '%s' using %s", VersionTag, release.TagName, asset.Name)
	err = installFromURL(asset.BrowserDownloadURL)
	if err != nil {
		return err
	}

	log.Println("Self-update completed successfully.")
	return nil
}

// pickAsset finds the uploaded binary built for goos/goarch. Release assets
// are named piclock-<tag>-<goos>-<goarch>.
func pickAsset(release *githubRelease, goos, goarch string) (*githubReleaseAsset, error) {
	if release.Draft || release.Prerelease {
		return nil, fmt.Errorf("release %s is not published yet", release.TagName)
	}

	suffix := fmt.Sprintf("-%s-%s", goos, goarch)
	for i, asset := range release.Assets {
		if asset.State == "uploaded" && strings.HasSuffix(asset.Name, suffix) {
			return &release.Assets[i], nil
		}
	}

	return nil, fmt.Errorf("release %s has no %s/%s binary", release.TagName, goos, goarch)
}

func installFromURL(url string) error {
	targetBinaryFullPath := path.Join(installDir, "piclock")
	tempFileFullPath := path.Join(installDir, "piclock-download.tmp")

	err := os.MkdirAll(installDir, 0755)
	if err != nil {
		return fmt.Errorf("installFromURL: MkdirAll: %s", err.Error())
	}

	tempFile, err := os.OpenFile(tempFileFullPath, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0755)
	if err != nil {
		return fmt.Errorf("installFromURL: OpenFile: %s", err.Error())
	}
	defer os.Remove(tempFileFullPath)
	defer tempFile.Close()

	log.Printf("Downloading new binary to '%s'", tempFileFullPath)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("installFromURL: http.Get: %s", err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("installFromURL: response status code was %d", resp.StatusCode)
	}

	_, err = io.Copy(tempFile, resp.Body)
	if err != nil {
		return fmt.Errorf("installFromURL: Copy: %s", err.Error())
	}

	err = tempFile.Sync()
	if err != nil {
		return fmt.Errorf("installFromURL: Sync: %s", err.Error())
	}

	tempFile.Close()

	log.Printf("Installing the new binary to '%s'", targetBinaryFullPath)
	err = os.Rename(tempFileFullPath, targetBinaryFullPath)
	if err != nil {
		return fmt.Errorf("installFromURL: Rename: %s", err.Error())
	}

	err = os.Chmod(targetBinaryFullPath, 0755)
	if err != nil {
		return fmt.Errorf("installFromURL: Chmod: %s", err.Error())
	}

	return nil
}

func getLatestRelease() (*githubRelease, error) {
	resp, err := http.Get(latestReleaseURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("No releases found.")
	}

	decoder := json.NewDecoder(resp.Body)
	var result githubRelease
	err = decoder.Decode(&result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}
